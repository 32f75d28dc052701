package handlers

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/sproutly-tech/sproutly-bridging/usererr"
)

type BigInt struct {
	*big.Int
}

func (b *BigInt) UnmarshalJSON(data []byte) error {
	if b.Int == nil {
		b.Int = new(big.Int)
	}

	s := strings.Trim(string(data), "\"")
	_, ok := b.SetString(s, 10)
	if !ok {
		return fmt.Errorf("failed to parse big.Int from %s", s)
	}

	return nil
}

func (b *BigInt) MarshalJSON() ([]byte, error) {
	return []byte(b.String()), nil
}

func JSONError(w http.ResponseWriter, err error, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	type errorResponse struct {
		Code   int    `json:"code"`
		Reason string `json:"reason"`
	}
	resp := errorResponse{
		Reason: err.Error(),
		Code:   code,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

type userErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// UserError writes a normalized user-facing error with a status derived from
// its code.
func UserError(w http.ResponseWriter, err error) {
	normalized := usererr.Normalize(err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusForCode(normalized.Code))
	_ = json.NewEncoder(w).Encode(userErrorResponse{
		Code:    string(normalized.Code),
		Message: normalized.Message,
		Hint:    string(normalized.Hint),
	})
}

func statusForCode(code usererr.Code) int {
	switch code {
	case usererr.CodeInvalidAmount, usererr.CodeInsufficientBalance:
		return http.StatusBadRequest
	case usererr.CodeNotReady, usererr.CodeUserRejected, usererr.CodeNetworkMismatch:
		return http.StatusConflict
	case usererr.CodeContractRevert:
		return http.StatusUnprocessableEntity
	case usererr.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, into interface{}) error {
	d := json.NewDecoder(r.Body)
	return d.Decode(into)
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
