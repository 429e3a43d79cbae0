package edctest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/properties"
)

// readBody reads the body and puts it back for later handlers.
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

// decodeBody parses a JSON object body and strips its @context.
func decodeBody(w http.ResponseWriter, r *http.Request) (*properties.Properties, bool) {
	body, err := readBody(r)
	if err == nil && len(bytes.TrimSpace(body)) == 0 {
		err = fmt.Errorf("empty body")
	}
	var doc properties.Properties
	if err == nil {
		err = json.Unmarshal(body, &doc)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return nil, false
	}
	doc.Delete(jsonld.KeyContext)
	return &doc, true
}

func envelope(doc *properties.Properties) *properties.Properties {
	out := properties.New().Set(jsonld.KeyContext, map[string]string(jsonld.DefaultContext()))
	for key, v := range doc.All() {
		if key != jsonld.KeyContext {
			out.SetValue(key, v)
		}
	}
	return out
}

func mustParse(doc string) *properties.Properties {
	var props properties.Properties
	if err := json.Unmarshal([]byte(doc), &props); err != nil {
		panic(fmt.Sprintf("edctest: invalid document: %v", err))
	}
	return &props
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, []map[string]any{{
		"message":      message,
		"type":         kind,
		"path":         nil,
		"invalidValue": nil,
	}})
}

func writeNotFound(w http.ResponseWriter, resource, id string) {
	writeError(w, http.StatusNotFound, "ObjectNotFound", fmt.Sprintf("Object of type %s with ID=%s was not found", resource, id))
}
