// internal/audit/audit_test.go
package audit

import "testing"

const cleanPage = `<!DOCTYPE html>
<html lang="en">
<head><title>Binaytara Foundation</title></head>
<body>
<main>
  <h1>Improving Cancer Care</h1>
  <h2>Conferences</h2>
  <h3>Upcoming</h3>
  <h2>News</h2>
  <img src="/logo.png" alt="Binaytara Foundation logo">
  <a href="/about">About us</a>
  <a href="/donate" aria-label="Donate now"><span class="icon"></span></a>
</main>
</body>
</html>`

func findRule(findings []Finding, rule string) []Finding {
	var matched []Finding
	for _, f := range findings {
		if f.Rule == rule {
			matched = append(matched, f)
		}
	}
	return matched
}

func TestCheckHTMLCleanPage(t *testing.T) {
	findings, err := CheckHTML(cleanPage)
	if err != nil {
		t.Fatalf("CheckHTML failed: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("expected no findings for clean page, got %v", findings)
	}
}

func TestCheckHTML(t *testing.T) {
	tests := []struct {
		name string
		html string
		rule string
		want int
	}{
		{
			name: "missing lang",
			html: `<html><body><main><h1>T</h1></main></body></html>`,
			rule: "html-lang",
			want: 1,
		},
		{
			name: "image without alt",
			html: `<html lang="en"><body><main><h1>T</h1><img src="/a.png"><img src="/b.png" alt=""></main></body></html>`,
			rule: "img-alt",
			want: 1,
		},
		{
			name: "empty link text",
			html: `<html lang="en"><body><main><h1>T</h1><a href="/x"></a></main></body></html>`,
			rule: "link-text",
			want: 1,
		},
		{
			name: "link with image alt is accessible",
			html: `<html lang="en"><body><main><h1>T</h1><a href="/x"><img src="/a.png" alt="logo"></a></main></body></html>`,
			rule: "link-text",
			want: 0,
		},
		{
			name: "missing main landmark",
			html: `<html lang="en"><body><h1>T</h1></body></html>`,
			rule: "main-landmark",
			want: 1,
		},
		{
			name: "role main counts as landmark",
			html: `<html lang="en"><body><div role="main"><h1>T</h1></div></body></html>`,
			rule: "main-landmark",
			want: 0,
		},
		{
			name: "missing h1",
			html: `<html lang="en"><body><main><h2>T</h2></main></body></html>`,
			rule: "heading-h1",
			want: 1,
		},
		{
			name: "heading level jump",
			html: `<html lang="en"><body><main><h1>T</h1><h3>Sub</h3></main></body></html>`,
			rule: "heading-order",
			want: 1,
		},
		{
			name: "heading level decrease is fine",
			html: `<html lang="en"><body><main><h1>T</h1><h2>A</h2><h3>B</h3><h2>C</h2></main></body></html>`,
			rule: "heading-order",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings, err := CheckHTML(tt.html)
			if err != nil {
				t.Fatalf("CheckHTML failed: %v", err)
			}
			if got := findRule(findings, tt.rule); len(got) != tt.want {
				t.Errorf("rule %s: expected %d findings, got %d (%v)", tt.rule, tt.want, len(got), got)
			}
		})
	}
}

func TestFindingString(t *testing.T) {
	f := Finding{Rule: "img-alt", Detail: "image has no alt attribute", Element: "/logo.png"}
	if got := f.String(); got != "img-alt: image has no alt attribute (/logo.png)" {
		t.Errorf("unexpected finding string %q", got)
	}
}
