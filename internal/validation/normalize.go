package validation

import "net/url"

// Fields is a form submission after array normalization: every declared
// list field is a (possibly empty) sequence, every other field a single
// string, absent fields read as "".
type Fields struct {
	values map[string]string
	lists  map[string][]string
}

// Normalize coerces form into Fields. Fields named in listFields become
// sequences whether they were absent, sent once or sent many times. Other
// fields keep their first value.
func Normalize(form url.Values, listFields ...string) Fields {
	f := Fields{
		values: make(map[string]string, len(form)),
		lists:  make(map[string][]string, len(listFields)),
	}

	isList := make(map[string]bool, len(listFields))
	for _, name := range listFields {
		isList[name] = true
		f.lists[name] = []string{}
	}

	for name, vals := range form {
		if isList[name] {
			f.lists[name] = append(f.lists[name], vals...)
			continue
		}
		if len(vals) > 0 {
			f.values[name] = vals[0]
		}
	}

	return f
}

// Value is the raw scalar value of name.
func (f Fields) Value(name string) string {
	return f.values[name]
}

// List is the raw sequence of name. Never nil for a declared list field.
func (f Fields) List(name string) []string {
	return f.lists[name]
}
