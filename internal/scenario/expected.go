package scenario

import "strings"

// Template tokens.
const (
	fileToken    = "{file}"
	includeToken = "{include}"
	versionToken = "{version}"
	schemeToken  = "{scheme}"
)

const formatterDiff = `{file}
====================
--- original

+++ formatted

@@ -1,2 +1,5 @@

 #include {include}
-int main(){int i;return;}
+int main() {
+  int i;
+  return;
+}
`

const clangTidyError = `{file}:2:18: error: non-void function 'main' should return a value [clang-diagnostic-return-type]
int main(){int i;return;}
                 ^
1 error generated.
Error while processing {file}.
`

const cppcheckLegacy = "[{file}:1]: (style) Unused variable: i\n"

const cppcheckCurrent = `{file}:2:16: style: Unused variable: i [unusedVariable]
int main(){int i;return;}
               ^
`

const cpplintErrors = `Done processing {file}
Total errors found: 5
{file}:0:  No copyright message found.  You should have a line: "Copyright [year] <Copyright Owner>"  [legal/copyright] [5]
{file}:2:  More than one command on the same line  [whitespace/newline] [0]
{file}:2:  Missing space after ;  [whitespace/semicolon] [3]
{file}:2:  Missing space before {  [whitespace/braces] [5]
{file}:2:  Could not find a newline character at the end of the file.  [whitespace/ending_newline] [5]
`

const iwyuErrors = `{file}:2:18: error: non-void function 'main' should return a value [-Wreturn-type]
int main(){int i;return;}
                 ^

{file} should add these lines:

{file} should remove these lines:
- #include {include}  // lines 1-1

The full include-list for {file}:
---
`

// The summary line of the oclint report ends in a space.
const oclintReport = "\n" +
	"Compiler Errors:\n" +
	"(please be aware that these errors will prevent OCLint from analyzing this source code)\n" +
	"\n" +
	"{file}:2:18: non-void function 'main' should return a value\n" +
	"\n" +
	"Clang Static Analyzer Results:\n" +
	"\n" +
	"{file}:2:18: non-void function 'main' should return a value\n" +
	"\n" +
	"\n" +
	"OCLint Report\n" +
	"\n" +
	"Summary: TotalFiles=0 FilesWithViolations=0 P1=0 P2=0 P3=0 \n" +
	"\n" +
	"\n" +
	"[OCLint ({scheme}://oclint.org) v{version}]\n"

// render fills a template for one sample file.
func render(tmpl, file string, extra ...string) []byte {
	pairs := []string{fileToken, file, includeToken, includeFor(file)}
	pairs = append(pairs, extra...)
	return []byte(strings.NewReplacer(pairs...).Replace(tmpl))
}

// includeFor returns the header the flawed sample of file's dialect uses.
func includeFor(file string) string {
	if strings.HasSuffix(file, ".cpp") {
		return "<string>"
	}
	return "<stdio.h>"
}
