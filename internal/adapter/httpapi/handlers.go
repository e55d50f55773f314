package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/babacardot/suparaise-sub001/internal/application/port/input"
	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/schema"
)

type InstructionRequest struct {
	TargetURL  string          `json:"target_url" validate:"required,max=2048"`
	TargetName string          `json:"target_name" validate:"required,max=200"`
	FormType   string          `json:"form_type,omitempty" validate:"omitempty,max=32"`
	SmartData  json.RawMessage `json:"smart_data" validate:"required"`
}

type SubmissionRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid"`
	StartupID string `json:"startup_id" validate:"required,uuid"`
	TargetID  string `json:"target_id" validate:"required,uuid"`
}

type SpecialistInfo struct {
	Type entity.FormType `json:"type"`
	Name string          `json:"name"`
}

type SpecialistsResponse struct {
	Specialists []SpecialistInfo          `json:"specialists"`
	Validation  entity.RegistryValidation `json:"validation"`
}

type Handler struct {
	planner  input.SubmissionPlanner
	runner   input.SubmissionRunner
	registry output.SpecialistRegistry
	logger   output.LoggerPort
	validate *validator.Validate
	maxBody  int64
}

func NewHandler(
	planner input.SubmissionPlanner,
	runner input.SubmissionRunner,
	registry output.SpecialistRegistry,
	logger output.LoggerPort,
	maxBody int64,
) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	return &Handler{
		planner:  planner,
		runner:   runner,
		registry: registry,
		logger:   logger,
		validate: v,
		maxBody:  maxBody,
	}
}

// CreateInstruction handles POST /api/v1/instructions. It only plans; nothing
// is persisted and no engine runs.
func (h *Handler) CreateInstruction(w http.ResponseWriter, r *http.Request) {
	var req InstructionRequest
	if !h.decode(w, r, &req) {
		return
	}

	data, err := schema.DecodeSmartData(req.SmartData)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	plan, err := h.planner.Plan(r.Context(), input.PlanRequest{
		TargetURL:  req.TargetURL,
		TargetName: req.TargetName,
		FormType:   req.FormType,
		Data:       data,
	})
	if err != nil {
		h.logger.Error("Planning failed", "target", req.TargetName, "error", err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// CreateSubmission handles POST /api/v1/submissions and blocks until the
// engine finishes.
func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	if h.runner == nil {
		writeError(w, http.StatusServiceUnavailable, CodeUnavailable, "submissions need a database connection", nil)
		return
	}

	var req SubmissionRequest
	if !h.decode(w, r, &req) {
		return
	}

	sub, err := h.runner.Run(r.Context(), input.RunRequest{
		UserID:    req.UserID,
		StartupID: req.StartupID,
		TargetID:  req.TargetID,
	})
	if err != nil {
		h.logger.Error("Submission failed", "startup_id", req.StartupID, "target_id", req.TargetID, "error", err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// ListSpecialists handles GET /api/v1/specialists.
func (h *Handler) ListSpecialists(w http.ResponseWriter, r *http.Request) {
	all := h.registry.All()
	infos := make([]SpecialistInfo, 0, len(all))
	for _, s := range all {
		infos = append(infos, SpecialistInfo{Type: s.Type(), Name: s.Name()})
	}
	writeJSON(w, http.StatusOK, SpecialistsResponse{
		Specialists: infos,
		Validation:  h.registry.Validate(),
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, h.maxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, CodeBadRequest, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), nil)
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, CodeBadRequest, "request body is empty", nil)
		default:
			writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid JSON: "+err.Error(), nil)
		}
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		writeDomainError(w, err)
		return false
	}
	return true
}
