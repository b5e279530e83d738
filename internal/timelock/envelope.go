package timelock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/driftlock/timevault/internal/codec"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

const (
	beginMarker = "-----BEGIN TLOCK-----"
	endMarker   = "-----END TLOCK-----"
)

// EncodeEnvelope renders c as the armored text block from spec.md §6.2.
func EncodeEnvelope(c *Ciphertext) string {
	var b strings.Builder
	b.WriteString(beginMarker)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "round: %d\n", c.Round)
	fmt.Fprintf(&b, "U: %s\n", codec.EncodeB64URL(c.U))
	fmt.Fprintf(&b, "V: %s\n", codec.EncodeB64URL(c.V))
	fmt.Fprintf(&b, "W: %s\n", codec.EncodeB64URL(c.W))
	b.WriteString(endMarker)
	return b.String()
}

// DecodeEnvelope parses an armored text block back into a Ciphertext. The
// parser is whitespace-tolerant and rejects unknown header keys, wrong
// group-element lengths, and duplicate keys, failing with MalformedEnvelope.
func DecodeEnvelope(text string) (*Ciphertext, error) {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "envelope too short")
	}
	if strings.TrimSpace(lines[0]) != beginMarker {
		return nil, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "missing BEGIN marker")
	}
	last := len(lines) - 1
	for last >= 0 && strings.TrimSpace(lines[last]) == "" {
		last--
	}
	if last < 0 || strings.TrimSpace(lines[last]) != endMarker {
		return nil, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "missing END marker")
	}

	fields := map[string]string{}
	for _, line := range lines[1:last] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "malformed header line: "+line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if _, dup := fields[key]; dup {
			return nil, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "duplicate header key: "+key)
		}
		switch key {
		case "round", "U", "V", "W":
			fields[key] = value
		default:
			return nil, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "unknown header key: "+key)
		}
	}

	for _, key := range []string{"round", "U", "V", "W"} {
		if _, ok := fields[key]; !ok {
			return nil, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "missing header key: "+key)
		}
	}

	round, err := strconv.ParseUint(fields["round"], 10, 64)
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindMalformedEnvelope, err)
	}

	u, err := codec.DecodeB64URL(fields["U"])
	if err != nil {
		return nil, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "malformed U: "+err.Error())
	}
	if len(u) != g2ElementLen {
		return nil, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "wrong U length")
	}

	v, err := codec.DecodeB64URL(fields["V"])
	if err != nil {
		return nil, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "malformed V: "+err.Error())
	}
	if len(v) != 32 {
		return nil, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "wrong V length")
	}

	w, err := codec.DecodeB64URL(fields["W"])
	if err != nil {
		return nil, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "malformed W: "+err.Error())
	}
	if len(w) != 32 {
		return nil, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "wrong W length")
	}

	return &Ciphertext{Round: round, U: u, V: v, W: w}, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
