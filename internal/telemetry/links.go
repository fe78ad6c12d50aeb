package telemetry

import "strings"

// BuildJobLinks maps job identifiers to console URLs, merging two sources
// of truth. Per-domain job metadata seeds the map; job resources with a
// fully-qualified resource ID overwrite it, because they reflect live
// infrastructure rather than possibly stale layer metadata.
//
// Every entry is inserted under the raw (trimmed) spelling and, when it
// differs and is non-empty, the normalized spelling, so lookups from data
// layers that still reference jobs by raw name keep working. Jobs with no
// resolvable URL are simply absent; a lookup miss means "no link".
func BuildJobLinks(layers []DataLayer, resources []Resource) map[string]string {
	links := make(map[string]string)

	for _, layer := range layers {
		for _, domain := range layer.Domains {
			raw := strings.TrimSpace(domain.JobName)
			if raw == "" || strings.TrimSpace(domain.JobURL) == "" {
				continue
			}
			putLink(links, raw, NormalizePortalURL(domain.JobURL))
		}
	}

	for _, resource := range resources {
		if !isJobResource(resource) {
			continue
		}
		raw := strings.TrimSpace(resource.Name)
		id := strings.TrimSpace(resource.AzureID)
		if raw == "" || id == "" {
			continue
		}
		putLink(links, raw, PortalURLFromResourceID(id))
	}

	return links
}

func putLink(links map[string]string, raw, target string) {
	links[raw] = target
	if normalized := NormalizeJobName(raw); normalized != "" && normalized != raw {
		links[normalized] = target
	}
}
