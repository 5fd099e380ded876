package utils

import "encoding/base64"

// DecodeB64 decodes URL encoded base64 with or without padding. Aries agents
// send both.
func DecodeB64(str string) ([]byte, error) {
	data, err := base64.URLEncoding.DecodeString(str)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(str)
	}
	if err != nil {
		data, err = base64.StdEncoding.DecodeString(str)
	}
	return data, err
}

// EncodeB64 encodes with padded URL encoding like the legacy pack format.
func EncodeB64(data []byte) string {
	return base64.URLEncoding.EncodeToString(data)
}
