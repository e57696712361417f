package xmpp

import "github.com/beevik/etree"

// Protocol namespaces the interceptor recognizes or emits.
const (
	// NSPrivate is the private XML storage namespace (XEP-0049).
	NSPrivate = "jabber:iq:private"
	// NSBookmarkStorage is the bookmark storage namespace (XEP-0048).
	NSBookmarkStorage = "storage:bookmarks"
	// NSVCard is the vCard profile namespace.
	NSVCard = "vcard-temp"
	// NSSharedBookmark marks a bookmark entry as server-managed.
	NSSharedBookmark = "http://jivesoftware.com/jeps/bookmarks"
)

// IQType is the IQ stanza type.
type IQType string

const (
	GetType    IQType = "get"
	SetType    IQType = "set"
	ResultType IQType = "result"
	ErrorType  IQType = "error"
)

// IQ is a query stanza. The payload is the single child element of the
// envelope; its xmlns attribute carries the query namespace. To and From
// are nil when the corresponding address is absent.
type IQ struct {
	Type    IQType
	ID      string
	To      *JID
	From    *JID
	Payload *etree.Element
}

// NewIQ builds an IQ with a payload element in the given namespace.
func NewIQ(typ IQType, id, tag, namespace string) *IQ {
	iq := &IQ{Type: typ, ID: id}
	iq.SetPayload(tag, namespace)
	return iq
}

// SetPayload replaces the payload with a fresh element in the given
// namespace and returns it.
func (iq *IQ) SetPayload(tag, namespace string) *etree.Element {
	el := etree.NewElement(tag)
	el.CreateAttr("xmlns", namespace)
	iq.Payload = el
	return el
}

// PayloadNamespace returns the payload's xmlns, or "" when there is no
// payload.
func (iq *IQ) PayloadNamespace() string {
	if iq.Payload == nil {
		return ""
	}
	return iq.Payload.SelectAttrValue("xmlns", "")
}

// ResultIQ builds an empty result stanza correlated to a request: same ID,
// addresses swapped.
func ResultIQ(req *IQ) *IQ {
	res := &IQ{Type: ResultType, ID: req.ID}
	if req.From != nil {
		to := *req.From
		res.To = &to
	}
	if req.To != nil {
		from := *req.To
		res.From = &from
	}
	return res
}
