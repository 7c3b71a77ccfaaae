package extract

import (
	"io"
	"net/mail"
	"net/textproto"
)

// Header names looked up on every message. net/mail canonicalizes keys, so
// lookup is case-insensitive regardless of how the source spells them.
var (
	keyMessageID = textproto.CanonicalMIMEHeaderKey("Message-Id")
	keySubject   = textproto.CanonicalMIMEHeaderKey("Subject")
	keyDate      = textproto.CanonicalMIMEHeaderKey("Date")
)

// readTriple parses the header block of one RFC 5322 message and returns
// its raw header triple. Headers that are absent from the message come
// back as nil fields; a header that is present but empty comes back as a
// pointer to "". The message body is not consumed beyond what net/mail
// buffers internally.
func readTriple(r io.Reader) (*Triple, error) {
	msg, err := mail.ReadMessage(r)
	if err != nil {
		return nil, err
	}
	return tripleFromHeader(msg.Header), nil
}

// tripleFromHeader extracts the three fields from an already-parsed
// header, preserving absent-vs-empty. Values are the raw header text: no
// RFC 2047 decoding, no whitespace trimming.
func tripleFromHeader(h mail.Header) *Triple {
	t := &Triple{}
	if vs, ok := h[keyMessageID]; ok && len(vs) > 0 {
		t.MessageID = str(vs[0])
	}
	if vs, ok := h[keySubject]; ok && len(vs) > 0 {
		t.Subject = str(vs[0])
	}
	if vs, ok := h[keyDate]; ok && len(vs) > 0 {
		t.Date = str(vs[0])
	}
	return t
}
