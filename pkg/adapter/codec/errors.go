package codec

import "fmt"

func errBadArity(what string, want, got int) error {
	return fmt.Errorf("%s: expected %d fields, got %d", what, want, got)
}

func errUnknownTag(tag string) error {
	return fmt.Errorf("unknown record tag %q", tag)
}

func errMissingSlash(s string) error {
	return fmt.Errorf("expected <class>/<name>, got %q", s)
}

func errMemberBeforeClass() error {
	return fmt.Errorf("member line before any class line")
}
