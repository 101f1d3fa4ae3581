// Package matrix expands a catalog of distributions and build variants into
// the lab records of a configuration document.
package matrix

import (
	"strings"
	"text/template"

	"go.trai.ch/labgen/internal/core/domain"
	"go.trai.ch/zerr"
)

// Generator builds documents from catalogs. It holds no state between passes.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate validates the catalog and expands it into a document.
//
// The plain group gets one record per distribution, labeled ta01, ta02, ...
// The build group gets one record per variant and distribution, variant-major.
// Its counter starts once at tb01 and keeps increasing across variants.
func (g *Generator) Generate(catalog *domain.Catalog) (*domain.Document, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	tmpl, err := catalog.Profile.CompilePostCreate()
	if err != nil {
		return nil, err
	}

	p := &pass{catalog: catalog, postCreate: tmpl}

	doc := &domain.Document{
		Header:   append([]string(nil), catalog.Profile.Header...),
		Sections: make([]domain.Section, 0, 1+len(catalog.Variants)),
	}

	plain, err := p.plainSection()
	if err != nil {
		return nil, err
	}
	doc.Sections = append(doc.Sections, plain)

	counter := 1
	for _, variant := range catalog.Variants {
		section, err := p.buildSection(variant, &counter)
		if err != nil {
			return nil, err
		}
		doc.Sections = append(doc.Sections, section)
	}

	return doc, nil
}

type pass struct {
	catalog    *domain.Catalog
	postCreate *template.Template
}

func (p *pass) plainSection() (domain.Section, error) {
	section := domain.Section{
		Title:   domain.PlainSectionTitle,
		Records: make([]domain.LabRecord, 0, len(p.catalog.Distributions)),
	}
	for i, distro := range p.catalog.Distributions {
		rec, err := p.record(domain.RolePlain, i+1, distro, "")
		if err != nil {
			return domain.Section{}, err
		}
		section.Records = append(section.Records, rec)
	}
	return section, nil
}

// buildSection emits the records of one variant. counter is shared by every
// variant of the pass and is advanced once per record.
func (p *pass) buildSection(variant domain.BuildVariant, counter *int) (domain.Section, error) {
	section := domain.Section{
		Title:   domain.BuildSectionTitle(variant),
		Records: make([]domain.LabRecord, 0, len(p.catalog.Distributions)),
	}
	for _, distro := range p.catalog.Distributions {
		rec, err := p.record(domain.RoleBuild, *counter, distro, variant)
		if err != nil {
			return domain.Section{}, err
		}
		section.Records = append(section.Records, rec)
		*counter++
	}
	return section, nil
}

func (p *pass) record(
	role domain.Role,
	n int,
	distro domain.DistributionName,
	variant domain.BuildVariant,
) (domain.LabRecord, error) {
	profile := &p.catalog.Profile

	rec := domain.LabRecord{
		Label:        domain.Label(role, n),
		Role:         role,
		Description:  string(distro),
		Distribution: distro,
		Variant:      variant,
		Groups:       append([]string(nil), profile.Groups...),
	}

	if role == domain.RoleBuild {
		rec.Description = string(distro) + " build " + string(variant)
		rec.Variables = profile.BuildVariables(variant)
	} else {
		rec.Variables = profile.PlainVariables()
	}

	cmd, err := p.renderPostCreate(&rec)
	if err != nil {
		return domain.LabRecord{}, err
	}
	rec.PostCreate = cmd

	return rec, nil
}

func (p *pass) renderPostCreate(rec *domain.LabRecord) (string, error) {
	var sb strings.Builder
	err := p.postCreate.Execute(&sb, domain.PostCreateData{
		Hostname:     rec.Hostname(),
		Label:        rec.Label,
		Distribution: string(rec.Distribution),
		Variant:      string(rec.Variant),
	})
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to render postcreate"), "label", rec.Label)
	}
	return sb.String(), nil
}
