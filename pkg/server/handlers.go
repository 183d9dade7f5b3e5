package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/sunburst/pkg/buildinfo"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/geom"
	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

// placeRequest describes one label. Either Text (measured server-side at
// FontSize) or an explicit Width/Height must be given.
type placeRequest struct {
	Segment  label.ArcSegment `json:"segment"`
	Center   geom.Point       `json:"center"`
	Text     string           `json:"text,omitempty"`
	FontSize float64          `json:"font_size,omitempty"`
	Width    *float64         `json:"width,omitempty"`
	Height   *float64         `json:"height,omitempty"`
}

type placeResponse struct {
	Anchor   geom.Point `json:"anchor"`
	HAlign   string     `json:"halign"`
	VAlign   string     `json:"valign"`
	Rotation float64    `json:"rotation"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Bounds   geom.Rect  `json:"bounds"`
	Midpoint geom.Point `json:"midpoint"`
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	width, height, err := s.labelSize(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := label.Place(req.Segment, req.Center, width, height)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, placeResponse{
		Anchor:   p.Anchor,
		HAlign:   p.HAlign.String(),
		VAlign:   p.VAlign.String(),
		Rotation: p.Rotation(),
		Width:    width,
		Height:   height,
		Bounds:   p.Bounds(width, height),
		Midpoint: label.Midpoint(req.Segment, req.Center),
	})
}

func (s *Server) labelSize(req placeRequest) (float64, float64, error) {
	switch {
	case req.Width != nil && req.Height != nil:
		w, h := *req.Width, *req.Height
		if err := errors.ValidateFinite("width", w); err != nil {
			return 0, 0, err
		}
		if err := errors.ValidateFinite("height", h); err != nil {
			return 0, 0, err
		}
		if w < 0 || h < 0 {
			return 0, 0, errors.New(errors.ErrCodeInvalidInput, "label size must not be negative, got %gx%g", w, h)
		}
		return w, h, nil
	case req.Text != "":
		size := req.FontSize
		if size == 0 {
			size = pipeline.DefaultFontSize
		}
		if err := errors.ValidateFinite("font_size", size); err != nil {
			return 0, 0, err
		}
		if size < 0 {
			return 0, 0, errors.New(errors.ErrCodeInvalidInput, "font_size must be positive, got %g", size)
		}
		p := label.NewPlacer(s.measurer, label.FontRef{Size: size})
		res, err := p.PlaceText(req.Segment, req.Center, req.Text)
		if err != nil {
			return 0, 0, err
		}
		return res.Width, res.Height, nil
	}
	return 0, 0, errors.New(errors.ErrCodeInvalidInput, "either text or width and height are required")
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts, err := renderOptions(r, body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	format := opts.Formats[0]
	cacheState := "miss"
	if res.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheState)
	w.Header().Set("X-Input-Hash", res.InputHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// renderOptions reads the query string. Only one format is rendered per
// request so the response is a single document.
func renderOptions(r *http.Request, body []byte) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Input:       body,
		InputFormat: q.Get("input"),
		VizType:     q.Get("viz"),
		Style:       q.Get("style"),
		Measure:     q.Get("measure"),
		Title:       q.Get("title"),
		Formats:     []string{pipeline.FormatSVG},
	}
	if f := q.Get("format"); f != "" {
		if strings.Contains(f, ",") {
			return opts, errors.New(errors.ErrCodeInvalidFormat, "render one format per request, got %q", f)
		}
		opts.Formats = []string{strings.ToLower(f)}
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"font_size", &opts.FontSize},
		{"scale", &opts.Scale},
	}
	for _, f := range floats {
		if v := q.Get(f.name); v != "" {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", f.name, v)
			}
			*f.dst = n
		}
	}
	optional := []struct {
		name string
		dst  **float64
	}{
		{"padding", &opts.Padding},
		{"min_sweep", &opts.MinSweep},
		{"pad_angle", &opts.PadAngle},
		{"start_angle", &opts.StartAngle},
	}
	for _, f := range optional {
		if v := q.Get(f.name); v != "" {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", f.name, v)
			}
			*f.dst = pipeline.Float(n)
		}
	}
	bools := []struct {
		name string
		dst  *bool
	}{
		{"sort", &opts.SortByValue},
		{"embed_font", &opts.EmbedFont},
		{"detailed", &opts.Detailed},
	}
	for _, b := range bools {
		if v := q.Get(b.name); v != "" {
			on, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", b.name, v)
			}
			*b.dst = on
		}
	}
	if v := q.Get("labels"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "labels: %q is not a boolean", v)
		}
		opts.Labels = pipeline.Bool(on)
	}
	return opts, nil
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		if stderrors.As(err, &tooBig) {
			s.fail(w, r, err)
			return false
		}
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCodeOr(err, errors.ErrCodeInternal))
	msg := errors.UserMessage(err)
	var tooBig *http.MaxBytesError
	if stderrors.As(err, &tooBig) {
		code = string(errors.ErrCodeInvalidInput)
		msg = "request body too large"
	}
	if status >= 500 {
		s.logger.Error("request failed", "err", err, "request_id", RequestID(r.Context()))
		msg = "internal error"
	}
	writeError(w, r, status, code, msg)
}

func statusFor(err error) int {
	var tooBig *http.MaxBytesError
	if stderrors.As(err, &tooBig) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidSegment:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	}
	if errors.IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = msg
	body.RequestID = RequestID(r.Context())
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
