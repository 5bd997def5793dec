// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package syntax

// skip expressions; each consumes the line ending after the preamble it keeps in place
const (
	xmlPrologSkip = `(<\?xml(.|\s)*?\?>[ \t]*(\r\n|\n|\r)?)?(<!DOCTYPE(.|\s)*?>[ \t]*(\r\n|\n|\r)?)?`
	shebangSkip   = `#![^\r\n]*(\r\n|\n|\r)?`
	pythonSkip    = `(#![^\r\n]*(\r\n|\n|\r))?(#[^\r\n]*coding[:=][^\r\n]*(\r\n|\n|\r)?)?`
	phpSkip       = `<\?php[ \t]*(\r\n|\n|\r)?`
	aspxSkip      = `(<%@(.|\s)*?%>[ \t]*(\r\n|\n|\r)?)*`
)

// 📋 DefaultLanguages returns the built-in comment table, one entry per
// extension family. Later entries override earlier ones on shared extensions.
func DefaultLanguages() []Language {
	return []Language{
		{
			Extensions:   []string{".c", ".h", ".cc", ".cpp", ".cxx", ".hpp", ".hh", ".hxx", ".m", ".java", ".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx", ".go", ".kt", ".kts", ".scala", ".swift", ".groovy", ".dart", ".rs", ".proto", ".idl"},
			LineComment:  "//",
			BeginComment: "/*",
			EndComment:   "*/",
		},
		{
			Extensions:   []string{".cs"},
			LineComment:  "//",
			BeginComment: "/*",
			EndComment:   "*/",
			BeginRegion:  "#region",
			EndRegion:    "#endregion",
		},
		{
			Extensions:  []string{".vb"},
			LineComment: "'",
			BeginRegion: "#Region",
			EndRegion:   "#End Region",
		},
		{
			Extensions:     []string{".xml", ".xaml", ".xsd", ".xsl", ".xslt", ".config", ".resx", ".svg", ".csproj", ".vbproj", ".fsproj", ".props", ".targets", ".nuspec", ".html", ".htm", ".md", ".vue"},
			BeginComment:   "<!--",
			EndComment:     "-->",
			SkipExpression: xmlPrologSkip,
		},
		{
			Extensions:     []string{".aspx", ".ascx", ".asax", ".master"},
			BeginComment:   "<%--",
			EndComment:     "--%>",
			SkipExpression: aspxSkip,
		},
		{
			Extensions:   []string{".cshtml", ".vbhtml", ".razor"},
			BeginComment: "@*",
			EndComment:   "*@",
		},
		{
			Extensions:   []string{".css"},
			BeginComment: "/*",
			EndComment:   "*/",
		},
		{
			Extensions:   []string{".scss", ".less"},
			LineComment:  "//",
			BeginComment: "/*",
			EndComment:   "*/",
		},
		{
			Extensions:     []string{".sh", ".bash", ".zsh", ".rb", ".pl", ".pm", ".r", ".yaml", ".yml", ".toml", ".tf", ".hcl", ".cmake", ".mk", ".dockerfile", ".conf", ".ini", ".cfg"},
			LineComment:    "#",
			SkipExpression: shebangSkip,
		},
		{
			Extensions:     []string{".py", ".pyw", ".pyi"},
			LineComment:    "#",
			SkipExpression: pythonSkip,
		},
		{
			Extensions:     []string{".ps1", ".psm1", ".psd1"},
			LineComment:    "#",
			BeginComment:   "<#",
			EndComment:     "#>",
			BeginRegion:    "#region",
			EndRegion:      "#endregion",
			SkipExpression: shebangSkip,
		},
		{
			Extensions:     []string{".php"},
			LineComment:    "//",
			BeginComment:   "/*",
			EndComment:     "*/",
			SkipExpression: phpSkip,
		},
		{
			Extensions:  []string{".sql"},
			LineComment: "--",
		},
		{
			Extensions:   []string{".lua"},
			LineComment:  "--",
			BeginComment: "--[[",
			EndComment:   "]]",
		},
		{
			Extensions:   []string{".hs"},
			LineComment:  "--",
			BeginComment: "{-",
			EndComment:   "-}",
		},
		{
			Extensions:   []string{".fs", ".fsi", ".fsx"},
			LineComment:  "//",
			BeginComment: "(*",
			EndComment:   "*)",
		},
		{
			Extensions:  []string{".clj", ".cljs", ".el", ".lisp", ".scm"},
			LineComment: ";",
		},
		{
			Extensions:  []string{".tex", ".erl", ".hrl"},
			LineComment: "%",
		},
		{
			Extensions:  []string{".bat", ".cmd"},
			LineComment: "::",
		},
	}
}
