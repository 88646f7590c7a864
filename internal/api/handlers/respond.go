package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/wonny/epsdash/internal/dashboard"
	"github.com/wonny/epsdash/internal/source"
	"github.com/wonny/epsdash/internal/view"
	"github.com/wonny/epsdash/pkg/logger"
)

const dateLayout = "2006-01-02"

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// StatusFor maps a load error to an HTTP status and the message shown to users.
// Upstream messages pass through verbatim.
func StatusFor(err error) (int, string) {
	var se *source.StatusError
	switch {
	case errors.As(err, &se):
		if se.StatusCode == http.StatusNotFound {
			return http.StatusNotFound, se.Message
		}
		return http.StatusBadGateway, se.Message
	case errors.Is(err, source.ErrUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, source.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, dashboard.ErrSuperseded):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusBadGateway, err.Error()
	}
}

func respondLoadError(w http.ResponseWriter, log *logger.Logger, err error) {
	status, message := StatusFor(err)

	entry := log.WithError(err).WithField("status", status)
	var le *dashboard.LoadError
	if errors.As(err, &le) {
		entry = entry.WithFields(map[string]interface{}{
			"part": le.Part,
			"date": le.Date,
		})
	}
	if status >= http.StatusInternalServerError {
		entry.Error("Load failed")
	} else {
		entry.Debug("Load rejected")
	}

	respondError(w, status, message)
}

// validDate reports whether s is a YYYY-MM-DD date
func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// parseViewQuery reads ?sort=&dir=&status=&grouped= into a candidate query
func parseViewQuery(r *http.Request) (view.Query, error) {
	values := r.URL.Query()
	q := view.DefaultQuery()

	key, err := view.ParseCandidateKey(values.Get("sort"))
	if err != nil {
		return q, err
	}
	q.Key = key

	dir, err := view.ParseDirection(values.Get("dir"), view.DefaultDirection(key))
	if err != nil {
		return q, err
	}
	q.Direction = dir

	status, err := view.ParseStatusFilter(values.Get("status"))
	if err != nil {
		return q, err
	}
	q.Status = status

	if g := values.Get("grouped"); g != "" {
		grouped, err := strconv.ParseBool(g)
		if err != nil {
			return q, errors.New("grouped must be true or false")
		}
		q.Grouped = grouped
	}

	return q, nil
}
