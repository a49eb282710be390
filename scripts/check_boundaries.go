// Command check_boundaries verifies the import rules between services, the
// shared kernel, contracts and platform code. Run it from the module root:
//
//	go run ./scripts
package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const modulePath = "orderflow"

var scannedRoots = []string{"contexts", "contracts", "internal"}

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// location is where a source file sits in the module layout. Service and
// layer are empty outside contexts/.
type location struct {
	dir     string
	service string
	layer   string
}

func main() {
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	violations, err := collectViolations(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "boundary check failed: %v\n", err)
		os.Exit(2)
	}
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

func collectViolations(root string) ([]violation, error) {
	var violations []violation
	for _, scanned := range scannedRoots {
		base := filepath.Join(root, scanned)
		err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			fileViolations, err := checkFile(path, filepath.ToSlash(rel))
			if err != nil {
				return err
			}
			violations = append(violations, fileViolations...)
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File != violations[j].File {
			return violations[i].File < violations[j].File
		}
		return violations[i].Line < violations[j].Line
	})
	return violations, nil
}

func checkFile(path string, rel string) ([]violation, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rel, err)
	}

	loc := locate(rel)
	var violations []violation
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)
		if rule, broken := checkImport(loc, importPath); broken {
			violations = append(violations, violation{
				File:   rel,
				Line:   fset.Position(imp.Pos()).Line,
				Import: importPath,
				Rule:   rule,
			})
		}
	}
	return violations, nil
}

// locate maps contexts/<context>/<service>/<layer>/... onto a location.
func locate(rel string) location {
	loc := location{dir: pathDir(rel)}
	parts := strings.Split(loc.dir, "/")
	if len(parts) >= 3 && parts[0] == "contexts" {
		loc.service = strings.Join(parts[:3], "/")
		if len(parts) >= 4 {
			loc.layer = parts[3]
		}
	}
	return loc
}

// checkImport returns the rule importPath breaks when imported from loc.
func checkImport(loc location, importPath string) (string, bool) {
	internal := strings.TrimPrefix(importPath, modulePath+"/")
	ownModule := internal != importPath

	switch {
	case loc.service != "":
		return checkServiceImport(loc, importPath, internal, ownModule)
	case under(loc.dir, "internal/shared"):
		if ownModule && !under(internal, "internal/shared") && !under(internal, "contracts") {
			return "shared kernel depends only on itself and contracts", true
		}
	case under(loc.dir, "contracts"):
		if ownModule && !under(internal, "contracts") {
			return "contracts must not import module code", true
		}
	case under(loc.dir, "internal/platform"):
		if ownModule && (under(internal, "internal/app") || under(internal, "cmd")) {
			return "platform must not import the composition root", true
		}
	}
	return "", false
}

func checkServiceImport(loc location, importPath string, internal string, ownModule bool) (string, bool) {
	if ownModule && under(internal, "contexts") && !under(internal, loc.service) {
		return "services reach each other only through contracts and ports", true
	}

	switch loc.layer {
	case "domain":
		if isStdlib(importPath) || under(internal, loc.service+"/domain") || internal == "internal/shared/faults" {
			return "", false
		}
		return "domain depends only on the standard library and faults", true
	case "application", "ports":
		if !ownModule {
			if isStdlib(importPath) {
				return "", false
			}
			return "application and ports must not import third-party packages", true
		}
		for _, allowed := range []string{
			loc.service + "/application",
			loc.service + "/domain",
			loc.service + "/ports",
			"internal/shared",
			"contracts",
		} {
			if under(internal, allowed) {
				return "", false
			}
		}
		return "application and ports depend on their own service and the shared kernel", true
	}

	if ownModule && (under(internal, "internal/platform") || under(internal, "internal/app") || under(internal, "cmd")) {
		return "services must not import platform or composition code", true
	}
	return "", false
}

func under(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func pathDir(rel string) string {
	if idx := strings.LastIndex(rel, "/"); idx != -1 {
		return rel[:idx]
	}
	return ""
}

func isStdlib(importPath string) bool {
	first := importPath
	if idx := strings.Index(first, "/"); idx != -1 {
		first = first[:idx]
	}
	return !strings.Contains(first, ".") && first != modulePath
}
