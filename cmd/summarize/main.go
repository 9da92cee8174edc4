package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"slurpwiki/internal/pdf"
	"slurpwiki/internal/summary"
)

var (
	app  = kingpin.New("sum", "consume a pdf file and create a summary")
	args = struct {
		input  *string
		sumLen *int
	}{
		input:  app.Flag("in", "input file to process").Short('i').Required().ExistingFile(),
		sumLen: app.Flag("sumlen", "number of summary sentences to return").Short('n').Default("5").Int(),
	}
	lexRank  = app.Command("lexrank", "use LexRank to summarize")
	textRank = app.Command("textrank", "use TextRank to summarize")
	textArgs = struct {
		method *string
	}{
		method: textRank.Flag("method", "`qty` for quantity or `rel` for relationship").Short('m').Default("rel").Enum("qty", "rel"),
	}
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	logrus.Infof("input: %s", *args.input)

	method := summary.LexRank
	if cmd == textRank.FullCommand() {
		method = summary.TextRank + ":" + *textArgs.method
	}
	sum, err := summary.New(method)
	if err != nil {
		logrus.Fatal(err)
	}

	f, slurper, err := pdf.Open(*args.input)
	if err != nil {
		logrus.Fatal(err)
	}
	defer func() {
		_ = f.Close()
	}()

	sentences, err := sum.Summarize(pdf.PlainText(slurper, pdf.AllPages, pdf.Stream), *args.sumLen)
	if err != nil {
		logrus.Fatal(err)
	}
	for i, s := range sentences {
		fmt.Printf("[%d] %s\n", i+1, s)
	}
}
