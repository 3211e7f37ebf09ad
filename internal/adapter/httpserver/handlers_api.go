package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pscheid92/pollpulse/internal/domain"
	apperrors "github.com/pscheid92/pollpulse/internal/platform/errors"
)

type createPollRequest struct {
	Question string `json:"question"`
}

type createPollResponse struct {
	Message string       `json:"message"`
	Poll    *domain.Poll `json:"poll"`
}

type submitResponseRequest struct {
	PollID *int64 `json:"poll_id"`
	Answer string `json:"answer"`
}

type submitAnswerRequest struct {
	Answer string `json:"answer"`
}

type submitResponseResponse struct {
	Message  string           `json:"message"`
	Response *domain.Response `json:"response"`
}

func (s *Server) handleCreatePoll(c echo.Context) error {
	var req createPollRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body").Wrap(err)
	}

	poll, err := s.app.CreatePoll(c.Request().Context(), req.Question)
	if err != nil {
		return err
	}

	resp := createPollResponse{Message: "Poll created successfully", Poll: poll}
	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListPolls(c echo.Context) error {
	polls, err := s.app.ListPolls(c.Request().Context())
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, polls); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// handleSubmitResponse takes the poll id from the body.
func (s *Server) handleSubmitResponse(c echo.Context) error {
	var req submitResponseRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body").Wrap(err)
	}
	if req.PollID == nil {
		return apperrors.ValidationError("poll_id is required")
	}

	return s.submit(c, *req.PollID, req.Answer)
}

// handleSubmitPollResponse takes the poll id from the path.
func (s *Server) handleSubmitPollResponse(c echo.Context) error {
	pollID, err := pollIDParam(c)
	if err != nil {
		return err
	}

	var req submitAnswerRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body").Wrap(err)
	}

	return s.submit(c, pollID, req.Answer)
}

func (s *Server) submit(c echo.Context, pollID int64, answer string) error {
	response, err := s.app.SubmitResponse(c.Request().Context(), pollID, answer)
	if err != nil {
		return err
	}

	resp := submitResponseResponse{Message: "Response submitted successfully", Response: response}
	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetResults(c echo.Context) error {
	pollID, err := pollIDParam(c)
	if err != nil {
		return err
	}

	report, err := s.app.GetResults(c.Request().Context(), pollID)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, report); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func pollIDParam(c echo.Context) (int64, error) {
	raw := c.Param("poll_id")
	pollID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError("invalid poll id").WithField("poll_id", raw)
	}
	return pollID, nil
}
