package cli

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"
	"time"
)

// TemplateContext is the data bulk files are rendered with.
type TemplateContext struct {
	ENV       map[string]string
	TODAY     string
	YESTERDAY string
	NOW       string
}

var missingKeyRegex = regexp.MustCompile(`map has no entry for key "(.*?)"`)

func newTemplateContext() TemplateContext {
	envMap := map[string]string{}
	for _, e := range os.Environ() {
		if k, v, ok := strings.Cut(e, "="); ok {
			envMap[k] = v
		}
	}
	day := today()
	return TemplateContext{
		ENV:       envMap,
		TODAY:     day.Format(time.DateOnly),
		YESTERDAY: day.AddDate(0, 0, -1).Format(time.DateOnly),
		NOW:       now().UTC().Truncate(time.Second).Format(time.RFC3339),
	}
}

// PreprocessYAML expands {{ .ENV.VAR }}, {{ .TODAY }}, {{ .YESTERDAY }} and
// {{ .NOW }} placeholders. Variables may also come from a .env file in the
// current directory.
func PreprocessYAML(inputRaw []byte) ([]byte, error) {
	loadDotEnv()

	tmpl, err := template.New("yaml").Option("missingkey=error").Parse(string(inputRaw))
	if err != nil {
		return nil, err
	}

	var output bytes.Buffer
	if err := tmpl.Execute(&output, newTemplateContext()); err != nil {
		matches := missingKeyRegex.FindStringSubmatch(err.Error())
		if len(matches) == 2 {
			return nil, fmt.Errorf("missing environment variable: %s (set it in your shell or .env file)", matches[1])
		}
		return nil, fmt.Errorf("template error: %w", err)
	}

	return output.Bytes(), nil
}
