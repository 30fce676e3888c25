package server

import (
	"encoding/json"
	"net/http"
	"strconv"
)

var handleFavicon = func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

var handleHealth = func(w http.ResponseWriter, r *http.Request) {
	resJSON(w, GetHealthStats())
}

func resJSON(w http.ResponseWriter, v interface{}) {
	buf, _ := json.Marshal(v)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	_, _ = w.Write(buf)
}
