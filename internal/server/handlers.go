package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/yokitheyo/bracketdecode/notation"
)

type Handler struct {
	decoders map[notation.Mode]*notation.Decoder
	mode     notation.Mode
	maxInput int
	log      *zap.Logger
}

// NewHandler serves requests with one shared decoder per mode. Requests
// that name no mode use the mode of def.
func NewHandler(def *notation.Decoder, maxInput int, log *zap.Logger) *Handler {
	decoders := map[notation.Mode]*notation.Decoder{def.Mode(): def}
	for _, m := range []notation.Mode{notation.ModeCompat, notation.ModeNested} {
		if _, ok := decoders[m]; !ok {
			decoders[m] = notation.NewDecoder(notation.WithMode(m), notation.WithMaxOutput(def.MaxOutput()))
		}
	}

	return &Handler{
		decoders: decoders,
		mode:     def.Mode(),
		maxInput: maxInput,
		log:      log,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/decode", h.decode).Methods("POST")
	r.HandleFunc("/validate", h.validate).Methods("GET")
	r.HandleFunc("/healthz", h.health).Methods("GET")
}

type decodeRequest struct {
	Notation string `json:"notation"`
	Mode     string `json:"mode"`
}

type decodeResult struct {
	Output string `json:"output"`
	Size   int    `json:"size"`
	Mode   string `json:"mode"`
}

type validateResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	Pos    *int   `json:"pos,omitempty"`
}

type grammarDetail struct {
	Reason string `json:"reason"`
	Pos    int    `json:"pos"`
}

type response struct {
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
	Detail interface{} `json:"detail,omitempty"`
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if err := parseRequest(r, &req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if h.maxInput > 0 && len(req.Notation) > h.maxInput {
		writeError(w, "notation too long", http.StatusRequestEntityTooLarge)
		return
	}

	mode := h.mode
	if req.Mode != "" {
		m, err := notation.ParseMode(req.Mode)
		if err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		mode = m
	}
	dec := h.decoders[mode]

	n, err := notation.Parse(req.Notation)
	if err != nil {
		var gerr *notation.GrammarError
		if errors.As(err, &gerr) {
			writeJSON(w, response{
				Error:  notation.ErrInvalidGrammar.Error(),
				Detail: grammarDetail{Reason: gerr.Reason.String(), Pos: gerr.Pos},
			}, http.StatusUnprocessableEntity)
			return
		}
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	out, err := dec.Expand(n)
	switch {
	case err == nil:
	case errors.Is(err, notation.ErrOutputLimit):
		writeError(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	case errors.Is(err, notation.ErrMultiplierRange):
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	default:
		h.log.Error("expand failed", zap.String("notation", req.Notation), zap.Error(err))
		writeError(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.log.Debug("decoded",
		zap.String("mode", mode.String()),
		zap.Int("input", len(req.Notation)),
		zap.Int("output", len(out)),
	)
	writeJSON(w, response{Result: decodeResult{Output: out, Size: len(out), Mode: mode.String()}}, http.StatusOK)
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("notation")
	if h.maxInput > 0 && len(input) > h.maxInput {
		writeError(w, "notation too long", http.StatusRequestEntityTooLarge)
		return
	}

	res := validateResult{Valid: true}
	if _, err := notation.Parse(input); err != nil {
		res.Valid = false
		var gerr *notation.GrammarError
		if errors.As(err, &gerr) {
			pos := gerr.Pos
			res.Reason = gerr.Reason.String()
			res.Pos = &pos
		}
	}
	writeJSON(w, response{Result: res}, http.StatusOK)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, response{Result: "ok"}, http.StatusOK)
}

func parseRequest(r *http.Request, req *decodeRequest) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return json.NewDecoder(r.Body).Decode(req)
	}

	// for form-urlencoded
	if err := r.ParseForm(); err != nil {
		return err
	}
	req.Notation = r.FormValue("notation")
	req.Mode = r.FormValue("mode")
	return nil
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, errorMsg string, statusCode int) {
	writeJSON(w, response{Error: errorMsg}, statusCode)
}
