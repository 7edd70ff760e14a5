// Package runtime provides the execution context for sitepub commands.
//
// It encapsulates shared dependencies needed by actions: the resolved
// configuration, the logger, the git runner, the gh tool, the Pages
// enablement and URL detection providers, and the site prober.
package runtime
