package lookup

import "github.com/bastiangx/hsnserve/pkg/codes"

// Messages for the orchestrated outcomes. Format failures carry the
// validator's own message.
const (
	MsgNotFound = "Code does not exist in the database"
	MsgFound    = "Valid code found in database"
)

// Kind names an Outcome variant.
type Kind string

const (
	KindFormatInvalid Kind = "format_invalid"
	KindNotFound      Kind = "not_found"
	KindValid         Kind = "valid"
)

// Outcome is the result of validating one code. It is one of FormatInvalid,
// NotFound or Valid.
type Outcome interface {
	Kind() Kind
	IsValid() bool
	Code() string
	Message() string
	outcome()
}

// FormatInvalid reports a code with the wrong lexical shape.
type FormatInvalid struct {
	Input  string
	Reason string
}

// NotFound reports a well-formed code absent from the table. Suggestions may
// be empty.
type NotFound struct {
	Input       string
	Suggestions []codes.Record
}

// Valid reports a code present in the table. Parents lists the ancestors the
// hierarchy check found, nearest first, and is empty for codes shorter than
// eight digits.
type Valid struct {
	Input   string
	Match   codes.Record
	Parents []codes.Record
}

func (FormatInvalid) Kind() Kind        { return KindFormatInvalid }
func (FormatInvalid) IsValid() bool     { return false }
func (o FormatInvalid) Code() string    { return o.Input }
func (o FormatInvalid) Message() string { return o.Reason }
func (FormatInvalid) outcome()          {}

func (NotFound) Kind() Kind      { return KindNotFound }
func (NotFound) IsValid() bool   { return false }
func (o NotFound) Code() string  { return o.Input }
func (NotFound) Message() string { return MsgNotFound }
func (NotFound) outcome()        {}

func (Valid) Kind() Kind      { return KindValid }
func (Valid) IsValid() bool   { return true }
func (o Valid) Code() string  { return o.Input }
func (Valid) Message() string { return MsgFound }
func (Valid) outcome()        {}
