package evidence

import (
	"regexp"
	"strings"

	"specmap/internal/manifest"
	"specmap/internal/paths"
)

// apiFrameworks gates endpoint extraction.
var apiFrameworks = map[string]bool{
	"express": true,
	"fastify": true,
	"koa":     true,
	"nestjs":  true,
	"graphql": true,
	"nextjs":  true,
}

var (
	// Decorator/attribute style: @Get('/users'), @Post().
	reDecoratorRoute = regexp.MustCompile(`^\s*@(Get|Post|Put|Patch|Delete|Head|Options)\s*\(\s*['"]?([^'")]*)['"]?\s*\)`)
	// Enclosing prefix declaration: @Controller('users').
	reControllerPrefix = regexp.MustCompile(`^\s*@Controller\s*\(\s*['"]([^'"]*)['"]\s*\)`)
	// Router-method-call style: app.get('/users', ...), router.post(...).
	reRouterCall = regexp.MustCompile(`^\s*(?:\w+)\.(get|post|put|patch|delete|head|options|all)\s*\(\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]`)
	// Express-style mount that sets a prefix for a sub-router:
	// app.use('/api', router).
	reRouterMount = regexp.MustCompile(`^\s*\w+\.use\s*\(\s*['"]([^'"]+)['"]\s*,`)
	// Query/mutation resolver declarations: @Query(), @Mutation().
	reResolverDecorator = regexp.MustCompile(`^\s*@(Query|Mutation|ResolveField)\s*\(`)
	// The resolver method named on the following declaration line.
	reMethodName = regexp.MustCompile(`^\s*(?:async\s+)?([a-zA-Z_$][\w$]*)\s*\(`)
)

// ExtractEndpoints detects API endpoint declarations: decorator style
// (path plus verb), Express-like router calls, and GraphQL resolver
// declarations. A route prefix found on an enclosing declaration is
// concatenated onto each path and the result slash-collapsed.
func ExtractEndpoints(path, content string, frameworks []string) []manifest.EvidenceItem {
	if !hasAPIFramework(frameworks) {
		return nil
	}

	var items []manifest.EvidenceItem
	lines := strings.Split(content, "\n")

	prefix := ""
	pendingResolver := "" // decorator kind awaiting its method name

	for i, line := range lines {
		if m := reControllerPrefix.FindStringSubmatch(line); m != nil {
			prefix = m[1]
			continue
		}
		if m := reRouterMount.FindStringSubmatch(line); m != nil {
			prefix = m[1]
			continue
		}

		if pendingResolver != "" {
			if m := reMethodName.FindStringSubmatch(line); m != nil {
				item := newItem(manifest.EvidenceAPIEndpoint, path, m[1], strings.TrimSpace(line), i+1)
				item.Metadata = map[string]string{
					"verb":  strings.ToLower(pendingResolver),
					"style": "graphql",
				}
				items = append(items, item)
			}
			pendingResolver = ""
			continue
		}

		if m := reDecoratorRoute.FindStringSubmatch(line); m != nil {
			route := joinRoute(prefix, m[2])
			item := newItem(manifest.EvidenceAPIEndpoint, path, route, strings.TrimSpace(line), i+1)
			item.Metadata = map[string]string{
				"verb":  strings.ToUpper(m[1]),
				"style": "decorator",
			}
			items = append(items, item)
			continue
		}

		if m := reRouterCall.FindStringSubmatch(line); m != nil {
			if m[1] == "use" {
				continue
			}
			route := joinRoute(prefix, m[2])
			item := newItem(manifest.EvidenceAPIEndpoint, path, route, strings.TrimSpace(line), i+1)
			item.Metadata = map[string]string{
				"verb":  strings.ToUpper(m[1]),
				"style": "router",
			}
			items = append(items, item)
			continue
		}

		if m := reResolverDecorator.FindStringSubmatch(line); m != nil {
			pendingResolver = m[1]
		}
	}
	return items
}

func hasAPIFramework(frameworks []string) bool {
	for _, fw := range frameworks {
		if apiFrameworks[fw] {
			return true
		}
	}
	return false
}

// joinRoute concatenates an enclosing prefix and a route path,
// collapsing duplicate separators.
func joinRoute(prefix, route string) string {
	joined := "/" + prefix + "/" + route
	joined = paths.CollapseSlashes(joined)
	if len(joined) > 1 {
		joined = strings.TrimSuffix(joined, "/")
	}
	return joined
}
