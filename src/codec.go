package pawdialog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DecodeFileOpenRequest decodes showFileOpenDialog arguments. Missing or
// malformed input is reported as an error, never a panic.
func DecodeFileOpenRequest(args json.RawMessage) (FileOpenRequest, error) {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return FileOpenRequest{}, errors.New("missing arguments: expected an object with parentWindow")
	}
	if trimmed[0] != '{' {
		return FileOpenRequest{}, errors.New("invalid arguments: expected an object with parentWindow")
	}

	// Keys are matched exactly; encoding/json alone would accept any casing
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return FileOpenRequest{}, fmt.Errorf("invalid arguments: %w", err)
	}
	value, ok := fields["parentWindow"]
	if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return FileOpenRequest{}, errors.New("missing parentWindow")
	}

	var handle WindowHandle
	if err := json.Unmarshal(value, &handle); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return FileOpenRequest{}, fmt.Errorf("invalid parentWindow: expected integer window handle, got %s", typeErr.Value)
		}
		return FileOpenRequest{}, fmt.Errorf("invalid parentWindow: %w", err)
	}

	return FileOpenRequest{ParentWindow: handle}, nil
}

// EncodeFileOpenRequest is the inverse of DecodeFileOpenRequest, used by hosts
// and tests that build calls
func EncodeFileOpenRequest(req FileOpenRequest) json.RawMessage {
	data, _ := json.Marshal(req)
	return data
}
