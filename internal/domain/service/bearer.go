package service

import "strings"

// bearerMarker is the scheme prefix carried in the Authorization header.
// Matching is case-insensitive per RFC 7235.
const bearerMarker = "Bearer "

// ExtractBearer strips the "Bearer " marker from an Authorization header
// value and returns the opaque token after it. It is a pure string operation:
// an absent or malformed marker yields ok=false and is treated upstream as
// "no token presented", never as an error.
func ExtractBearer(header string) (token string, ok bool) {
	if len(header) < len(bearerMarker) {
		return "", false
	}
	if !strings.EqualFold(header[:len(bearerMarker)], bearerMarker) {
		return "", false
	}

	token = strings.TrimSpace(header[len(bearerMarker):])

	return token, token != ""
}
