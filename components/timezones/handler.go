package timezones

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// Response formats selected with the "format" query parameter.
const (
	FormatOptions = "options"
	FormatRecords = "records"
)

// HTTPError lets guard errors choose the response status.
type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type dataResponse struct {
	Data any `json:"data"`
}

// Handler is an alias of NewHandler.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions serves search results as {"data": [...]} for GET and
// HEAD. format=records returns full records instead of value/label options.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := checkRequest(w, r, opts); !ok {
			http.Error(w, http.StatusText(status), status)
			return
		}

		records, err := resolveRecords(opts)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		params := r.URL.Query()
		query := params.Get(opts.SearchParam)
		limit := parseInt(params.Get(opts.LimitParam))

		var data any
		switch strings.ToLower(strings.TrimSpace(params.Get("format"))) {
		case "", FormatOptions:
			results := SearchOptions(records, query, limit, opts)
			if results == nil {
				results = []Option{}
			}
			data = results
		case FormatRecords:
			results := Search(records, query, limit, opts)
			if results == nil {
				results = []Record{}
			}
			data = results
		default:
			http.Error(w, "unknown format", http.StatusBadRequest)
			return
		}

		writeData(w, r, data)
	})
}

// OffsetHandlerWithOptions answers ?location=<id> with the matching record.
// Unknown locations get a 404.
func OffsetHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := checkRequest(w, r, opts); !ok {
			http.Error(w, http.StatusText(status), status)
			return
		}

		location := strings.TrimSpace(r.URL.Query().Get(opts.LocationParam))
		if location == "" {
			http.Error(w, "missing "+opts.LocationParam, http.StatusBadRequest)
			return
		}

		records, err := resolveRecords(opts)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		rec, ok := findRecord(records, location)
		if !ok {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		writeData(w, r, rec)
	})
}

func writeData(w http.ResponseWriter, r *http.Request, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(dataResponse{Data: data})
}

// findRecord mirrors Table semantics: the last record for a location wins.
func findRecord(records []Record, location string) (Record, bool) {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Location == location {
			return records[i], true
		}
	}
	return Record{}, false
}

// checkRequest validates method and guard, returning the status to reply
// with when the request is rejected.
func checkRequest(w http.ResponseWriter, r *http.Request, opts Options) (int, bool) {
	if r == nil {
		return http.StatusBadRequest, false
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		return http.StatusMethodNotAllowed, false
	}
	if opts.Guard == nil {
		return 0, true
	}
	if err := opts.Guard(r); err != nil {
		return guardStatus(err), false
	}
	return 0, true
}

func guardStatus(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if code := httpErr.StatusCode(); code > 0 {
			return code
		}
	}
	return http.StatusForbidden
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
