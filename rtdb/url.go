package rtdb

import "strings"

// URL composes the request URL from the endpoint, the location segments and
// the set modifiers:
//
//	endpoint + seg1/.../segN + ".json" [+ "?" name=value {"&" name=value}]
//
// Nothing is escaped, so a stray '%' yields a URL the verbs cannot send.
func (c *Client) URL() string {
	var b strings.Builder
	b.WriteString(c.endpoint)
	for i, seg := range c.location {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(seg)
	}
	b.WriteString(".json")

	sep := byte('?')
	for m, v := range c.query {
		if v == "" {
			continue
		}
		b.WriteByte(sep)
		b.WriteString(modifierNames[m])
		b.WriteByte('=')
		b.WriteString(v)
		sep = '&'
	}
	return b.String()
}
