package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

const pageExtractTimeout = 10 * time.Second

func extractPDF(name string, data []byte) (content string, err error) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("pdf parser panicked", "name", name, "panic", p)
			content = ""
			err = loadError(name, "the PDF is malformed", fmt.Errorf("%w: %v", ErrUnreadable, p))
		}
	}()

	f, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		logger.Warn("failed opening of pdf file", "name", name, "error", err)
		return "", loadError(name, "the PDF could not be opened", errors.Join(ErrUnreadable, err))
	}

	var pages []string
	numPages := f.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			logger.Debug("extractPDF", "page value is null", i)
			continue
		}
		text, err := protectExtract(page)
		if err != nil {
			// skip the page, keep the rest of the document
			logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n\n"), nil
}

// extractDocxOdtRtf reads .docx, .odt and .rtf content with lu4p/cat.
func extractDocxOdtRtf(name string, data []byte) (string, error) {
	text, err := cat.FromBytes(data)
	if err != nil {
		logger.Warn("Error extracting content from doc", "name", name, "error", err)
		return "", loadError(name, "the document could not be parsed", errors.Join(ErrUnreadable, err))
	}
	return text, nil
}

func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}

	resChan := make(chan result, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				resChan <- result{err: fmt.Errorf("page extraction panicked: %v", p)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()

	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(pageExtractTimeout):
		logger.Error("pageExtract", "timeout")
		return "", errors.New("timeout")
	}
}
