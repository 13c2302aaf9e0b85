// Package catalog seeds, imports and exports the option catalog.
package catalog

import "github.com/pders01/pickr/internal/combobox"

// Defaults is the built-in language and framework list.
func Defaults() []combobox.Option {
	return []combobox.Option{
		{Value: "javascript", Label: "JavaScript"},
		{Value: "python", Label: "Python"},
		{Value: "typescript", Label: "TypeScript"},
		{Value: "react", Label: "React"},
		{Value: "next", Label: "Next.js"},
		{Value: "angular", Label: "Angular"},
		{Value: "nodejs", Label: "Node.js"},
		{Value: "django", Label: "Django"},
		{Value: "symfony", Label: "Symfony"},
	}
}
