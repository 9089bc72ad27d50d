package main

import (
	"fmt"

	"github.com/papergrade/papergrade"
)

// Run executes the classify command.
func (c *ClassifyCmd) Run(deps *Dependencies) error {
	result, err := deps.Classifier.Classify(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", papergrade.ErrorMessage(err))
		return err
	}

	switch result.Kind {
	case papergrade.KindDirectPDF:
		fmt.Fprintf(deps.Stdout, "direct-pdf  %s\n", result.PDFURL)
	case papergrade.KindPDFViewer:
		fmt.Fprintf(deps.Stdout, "pdf-viewer  %s\n", result.PDFURL)
	case papergrade.KindDocSite:
		fmt.Fprintln(deps.Stdout, "doc-site")
	default:
		fmt.Fprintf(deps.Stderr, "could not determine what %s points at; no action taken\n", c.URL)
	}
	return nil
}
