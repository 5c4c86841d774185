// Command html5dump tokenizes stdin or an argument file and prints every
// token it sees — a debugging aid, not a supported CLI surface.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tomyeh/html5plus/stream"
	"github.com/tomyeh/html5plus/tokenizer"
)

func main() {
	r := os.Stdin
	var file string
	if len(os.Args) > 1 {
		file = os.Args[1]
		f, err := os.Open(file)
		if err != nil {
			logrus.WithError(err).Fatal("html5dump: opening input")
		}
		defer f.Close()
		r = f
	}

	s, err := stream.New(r, stream.Options{File: file, ParseMeta: true})
	if err != nil {
		logrus.WithError(err).Fatal("html5dump: building input stream")
	}

	t := tokenizer.New(s, tokenizer.DefaultOptions())
	for t.Next() {
		tok := t.Token()
		fmt.Printf("%s\t%+v\n", tok.Type, tok)
	}
}
