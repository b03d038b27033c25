package wire

// Response is a fully built HTTP/1.1 response, ready for Encode.
type Response struct {
	Status int
	Header *Header
	Body   []byte
}

// NewResponse returns a 200 OK response with an empty header set and
// no body, the codec's default before a handler customizes it.
func NewResponse() *Response {
	return &Response{
		Status: StatusOK,
		Header: NewHeader(),
	}
}

// SetPlainTextBody sets body as the response body and adjusts
// Content-Type/Content-Length accordingly. Used for synthesized error
// responses (501, 431, ...).
func (r *Response) SetPlainTextBody(body string) {
	r.Body = []byte(body)
	r.Header.Set("Content-Type", "text/plain")
	r.Header.Set("Content-Length", itoa(len(r.Body)))
}

// StripBodyKeepLength empties the body while leaving Content-Length
// untouched, used to turn a GET response into its HEAD counterpart.
func (r *Response) StripBodyKeepLength() {
	r.Body = nil
}
