package spigotsrc

import (
	"bytes"
	"fmt"
	"strings"
)

func urlf(format, v string) string {
	return fmt.Sprintf(format, v)
}

func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}
