package verbs

const (
	Get     = VerbValue("get")
	View    = VerbValue("view")
	Export  = VerbValue("export")
	Version = VerbValue("version")
)

// Empty type to represent the _type_ Verb. Genesis is to support a key in a Context
type VerbKey struct{}

// Verb is a global instance of the VerbKey type
var Verb = VerbKey{}

// Will represent a specific Verb (get, view, export)
type VerbValue string

func (v VerbValue) String() string {
	return string(v)
}
