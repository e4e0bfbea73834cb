package rtdb

// Modifier names one of the query-string parameters understood by the
// database. Modifiers are always composed in declaration order.
type Modifier int

const (
	ModOrderBy Modifier = iota
	ModLimitToFirst
	ModLimitToLast
	ModStartAt
	ModEndAt
	ModEqualTo

	numModifiers
)

var modifierNames = [numModifiers]string{
	"orderBy",
	"limitToFirst",
	"limitToLast",
	"startAt",
	"endAt",
	"equalTo",
}

// String returns the query parameter name.
func (m Modifier) String() string {
	if m < 0 || m >= numModifiers {
		return "unknown"
	}
	return modifierNames[m]
}

// Param is one set query modifier.
type Param struct {
	Name  string
	Value string
}

// query holds the raw modifier values. An empty value means unset.
type query [numModifiers]string

func (q *query) params() []Param {
	var out []Param
	for m, v := range q {
		if v != "" {
			out = append(out, Param{Name: modifierNames[m], Value: v})
		}
	}
	return out
}

// OrderBy sets the orderBy modifier.
func (c *Client) OrderBy(value string) *Client { return c.set(ModOrderBy, value) }

// LimitToFirst sets the limitToFirst modifier.
func (c *Client) LimitToFirst(value string) *Client { return c.set(ModLimitToFirst, value) }

// LimitToLast sets the limitToLast modifier.
func (c *Client) LimitToLast(value string) *Client { return c.set(ModLimitToLast, value) }

// StartAt sets the startAt modifier.
func (c *Client) StartAt(value string) *Client { return c.set(ModStartAt, value) }

// EndAt sets the endAt modifier.
func (c *Client) EndAt(value string) *Client { return c.set(ModEndAt, value) }

// EqualTo sets the equalTo modifier.
func (c *Client) EqualTo(value string) *Client { return c.set(ModEqualTo, value) }

// Set assigns a modifier by name. Unknown modifiers are ignored.
// An empty value unsets the modifier.
func (c *Client) Set(m Modifier, value string) *Client { return c.set(m, value) }

// ClearQuery unsets every modifier.
func (c *Client) ClearQuery() *Client {
	c.query = query{}
	return c
}

// Query returns the set modifiers in composition order.
func (c *Client) Query() []Param {
	return c.query.params()
}

func (c *Client) set(m Modifier, value string) *Client {
	if m >= 0 && m < numModifiers {
		c.query[m] = value
	}
	return c
}
