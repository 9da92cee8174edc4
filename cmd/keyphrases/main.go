package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"slurpwiki/internal/chunk"
	"slurpwiki/internal/keyphrase"
	"slurpwiki/internal/pdf"
	"slurpwiki/internal/tally"
)

var (
	app  = kingpin.New("keyphrases", "consume a pdf or text file and show the keyphrases of every chunk")
	args = struct {
		input     *string
		fileType  *string
		method    *string
		topN      *int
		chunkSize *int
		pages     *string
		verbose   *bool
	}{
		input:     app.Flag("in", "input file to process").Short('i').Required().ExistingFile(),
		fileType:  app.Flag("type", "input file type (pdf, txt)").Short('x').Default("pdf").Enum("pdf", "txt"),
		method:    app.Flag("method", "keyphrase model ("+strings.Join(keyphrase.Methods, ", ")+")").Short('m').Default(keyphrase.RAKE).Enum(keyphrase.Methods...),
		topN:      app.Flag("top-n", "keyphrases kept per chunk").Short('n').Default("5").Int(),
		chunkSize: app.Flag("chunk-size", "maximum words per chunk").Short('c').Default(fmt.Sprint(chunk.DefaultSize)).Int(),
		pages:     app.Flag("pages", "page range of a pdf, e.g. 3-7").Short('p').String(),
		verbose:   app.Flag("verbose", "display per chunk keyphrases").Short('v').Bool(),
	}
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	logrus.Infof("input: %s", *args.input)

	text, err := readText()
	if err != nil {
		logrus.Fatal(err)
	}

	opts := keyphrase.DefaultOptions()
	opts.TopN = *args.topN
	ex, err := keyphrase.New(*args.method, opts)
	if err != nil {
		logrus.Fatal(err)
	}

	counts := tally.New()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', 0)
	for i, c := range chunk.Split(text, *args.chunkSize) {
		phrases := ex.Extract(c)
		counts.Observe(phrases...)
		if *args.verbose {
			_, _ = fmt.Fprintf(w, "%d\t%s\n", i+1, strings.Join(phrases, " | "))
		}
	}
	if counts.Len() == 0 {
		fmt.Println("No keywords were found in the document.")
		return
	}

	_, _ = fmt.Fprintf(w, "\nKeyphrase\tChunks\n")
	for _, kw := range counts.ByFrequency() {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", kw.Phrase, kw.Count)
	}
	_ = w.Flush()
}

func readText() (string, error) {
	if *args.fileType == "txt" {
		b, err := os.ReadFile(*args.input)
		return string(b), err
	}

	pr := pdf.AllPages
	if *args.pages != "" {
		if _, err := fmt.Sscanf(*args.pages, "%d-%d", &pr.Start, &pr.End); err != nil {
			return "", fmt.Errorf("invalid page range %q: %w", *args.pages, err)
		}
	}
	f, slurper, err := pdf.Open(*args.input)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()
	return pdf.PlainText(slurper, pr, pdf.Stream), nil
}
