// Package codec serializes snapshots, settings and profile collections to
// a versioned, schema-tolerant JSON representation shared by every
// cooperating process.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
)

// Version is the current envelope version. Version 1 predates the
// extra-usage fields; decoding is tolerant in both directions.
const Version = 2

// ErrMalformed indicates a payload that is structurally unparseable.
// Callers treat it the same as missing data, never as a fatal fault.
var ErrMalformed = errors.New("malformed payload")

// envelope wraps every encoded value. Unknown envelope versions are not
// rejected: the payload is decoded best-effort with unknown fields
// ignored, so a newer writer never breaks an older reader.
type envelope struct {
	Version int             `json:"version"`
	Payload json.RawMessage `json:"payload"`
}

// Encode wraps v in the current envelope version.
func Encode(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return json.Marshal(envelope{Version: Version, Payload: payload})
}

// Decode unwraps data into v. Payloads written without an envelope by
// legacy producers are decoded directly. Structural garbage (including a
// torn concurrent write) returns ErrMalformed.
func Decode(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrMalformed
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return ErrMalformed
	}

	payload := []byte(env.Payload)
	if len(bytes.TrimSpace(payload)) == 0 || string(bytes.TrimSpace(payload)) == "null" {
		// No envelope: the data itself is the payload.
		payload = trimmed
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return ErrMalformed
	}
	return nil
}

// EncodeSnapshot encodes a canonical usage snapshot.
func EncodeSnapshot(s *models.UsageSnapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("cannot encode nil snapshot")
	}
	return Encode(s)
}

// DecodeSnapshot decodes a canonical usage snapshot. A legacy payload
// lacking the extra-usage fields decodes successfully with
// ExtraUsage == nil.
func DecodeSnapshot(data []byte) (*models.UsageSnapshot, error) {
	var s models.UsageSnapshot
	if err := Decode(data, &s); err != nil {
		return nil, err
	}
	// Extra usage is all-or-nothing; a partially populated group from a
	// degraded writer reads back as absent.
	if s.ExtraUsage != nil && s.ExtraUsage.CurrencyCode == "" &&
		s.ExtraUsage.AmountUsedCents == 0 && s.ExtraUsage.AmountLimitCents == 0 {
		s.ExtraUsage = nil
	}
	return &s, nil
}

// EncodeProfiles encodes the profile collection.
func EncodeProfiles(profiles []models.Profile) ([]byte, error) {
	return Encode(profileCollection{Profiles: profiles})
}

// DecodeProfiles decodes the profile collection.
func DecodeProfiles(data []byte) ([]models.Profile, error) {
	var c profileCollection
	if err := Decode(data, &c); err != nil {
		return nil, err
	}
	return c.Profiles, nil
}

// profileCollection is the encoded shape of the profile list.
type profileCollection struct {
	Profiles []models.Profile `json:"profiles"`
}

// EncodeSettings encodes a settings bundle.
func EncodeSettings(s models.Settings) ([]byte, error) {
	return Encode(s)
}

// DecodeSettings decodes a settings bundle. Fields absent from the
// payload keep their documented defaults, so a bundle written by an
// older producer still decodes to a complete Settings value.
func DecodeSettings(data []byte) (models.Settings, error) {
	s := models.DefaultSettings()
	if err := Decode(data, &s); err != nil {
		return models.DefaultSettings(), err
	}
	return s.Normalize(), nil
}
