package telemetry

// DefaultExcludedDomains are the administrative domains hidden from every
// layer listing before any downstream component sees it.
var DefaultExcludedDomains = []string{"admin", "internal", "monitoring", "sandbox"}

// ExclusionSet builds a normalized-key membership set from a list of
// domain names. Empty entries are dropped.
func ExclusionSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		key := NormalizeDomainKey(name)
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

// FilterLayers returns a new layer sequence with excluded domains removed.
// Exclusion is by normalized key equality. Layers are never removed, even
// when all their domains are; order of layers and surviving domains is
// preserved. The input is not mutated.
func FilterLayers(layers []DataLayer, excluded map[string]struct{}) []DataLayer {
	out := make([]DataLayer, 0, len(layers))
	for _, layer := range layers {
		kept := make([]Domain, 0, len(layer.Domains))
		for _, domain := range layer.Domains {
			if _, skip := excluded[NormalizeDomainKey(domain.Name)]; skip {
				continue
			}
			kept = append(kept, domain)
		}
		layer.Domains = kept
		out = append(out, layer)
	}
	return out
}
