package http

import (
	"encoding/json"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeMsgPack = "application/x-msgpack"
)

// formatter writes responses as JSON, or as MessagePack when the request
// carries format=msgpack. Both encodings use the json struct tags.
type formatter struct{}

func (f *formatter) write(w http.ResponseWriter, r *http.Request, status int, data any) error {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if r.URL.Query().Get("format") == "msgpack" {
		w.Header().Set("Content-Type", contentTypeMsgPack)
		w.WriteHeader(status)
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(data)
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}
