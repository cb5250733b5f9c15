package translate

import (
	"github.com/indic-translate/backend/internal/glossary"
	"github.com/indic-translate/backend/internal/region"
)

// Pipeline applies the pre-translation transforms: glossary term
// substitution, then regional adaptation. Both stages are pure functions
// of the input text and the referenced rule data.
type Pipeline struct {
	glossaries *glossary.Cache
}

func NewPipeline(glossaries *glossary.Cache) *Pipeline {
	return &Pipeline{glossaries: glossaries}
}

// Apply transforms text for a domain and region. glossaryApplied is true
// iff the domain's glossary mapping is non-empty; regionApplied is true
// iff adaptation rules exist for the region. Missing domains and regions
// are no-ops, never errors.
func (p *Pipeline) Apply(text, domain, regionName string) (out string, glossaryApplied, regionApplied bool) {
	g := p.glossaries.Get(domain)
	out = g.Apply(text)
	glossaryApplied = len(g) > 0

	regionApplied = region.Known(regionName)
	out = region.Adapt(out, regionName)

	return out, glossaryApplied, regionApplied
}
