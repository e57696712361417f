package xmpp

import "strings"

// JID is an XMPP address: node@domain/resource. Node and Resource are
// optional; the node part identifies the account on the local server.
type JID struct {
	Node     string
	Domain   string
	Resource string
}

// ParseJID splits a JID string into its parts. It performs no validation
// beyond the structural split; addresses arrive pre-validated from the
// host transport.
func ParseJID(s string) JID {
	var j JID
	if i := strings.IndexByte(s, '/'); i >= 0 {
		j.Resource = s[i+1:]
		s = s[:i]
	}
	if i := strings.IndexByte(s, '@'); i >= 0 {
		j.Node = s[:i]
		j.Domain = s[i+1:]
	} else {
		j.Domain = s
	}
	return j
}

// Bare returns node@domain without the resource.
func (j JID) Bare() string {
	if j.Node == "" {
		return j.Domain
	}
	return j.Node + "@" + j.Domain
}

// String returns the full JID form.
func (j JID) String() string {
	s := j.Bare()
	if j.Resource != "" {
		s += "/" + j.Resource
	}
	return s
}

// IsZero reports whether the JID is empty.
func (j JID) IsZero() bool {
	return j.Node == "" && j.Domain == "" && j.Resource == ""
}
