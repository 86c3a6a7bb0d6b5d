// File: internal/portal/workload.go
package portal

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"warwalk/internal/review"
)

// environmentValue normalizes the configured environment name to the value
// carried by the form's radio buttons.
func environmentValue(environment string) (string, bool) {
	env := strings.ToLower(strings.TrimSpace(environment))
	switch {
	case strings.HasPrefix(env, "pre-prod"):
		return "preprod", true
	case strings.HasPrefix(env, "prod"):
		return "prod", true
	}
	return "", false
}

// CreateWorkload populates the workload creation form from the review
// metadata and submits it.
func (p *Portal) CreateWorkload(ctx context.Context, w review.Workload) error {
	if err := p.s.Click(ctx, selDefineWorkloadLink, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: define workload: %v", ErrAutomation, err)
	}

	if err := p.s.Type(ctx, selWorkloadName, w.Name, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: workload name: %v", ErrAutomation, err)
	}
	if err := p.s.Type(ctx, selWorkloadDescription, w.Description, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: workload description: %v", ErrAutomation, err)
	}

	if err := p.selectCategory(ctx, selIndustryTypeCombo, w.IndustryType); err != nil {
		return err
	}
	if err := p.selectCategory(ctx, selIndustryCombo, w.Industry); err != nil {
		return err
	}

	if err := p.selectEnvironment(ctx, w.Environment); err != nil {
		return err
	}
	if err := p.selectRegions(ctx, w.Regions); err != nil {
		return err
	}
	if err := p.enterAccountIDs(ctx, w.AccountIDs); err != nil {
		return err
	}

	if err := p.s.Click(ctx, selCreateWorkloadButton, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: create workload button: %v", ErrAutomation, err)
	}
	p.logger.Info("Workload created.", zap.String("name", w.Name))
	return nil
}

// selectCategory opens a category combo box and picks the item whose DOM id
// embeds the token derived from the display name.
func (p *Portal) selectCategory(ctx context.Context, combo, name string) error {
	if err := p.s.Click(ctx, combo, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: category selector '%s': %v", ErrAutomation, combo, err)
	}
	token := categoryToken(name)
	if err := p.s.Click(ctx, optionSelector(token), p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: category '%s' (token '%s'): %v", ErrAutomation, name, token, err)
	}
	return nil
}

// selectEnvironment resolves the environment radio button, asking the
// operator to re-enter the value once if the configured one is unusable.
func (p *Portal) selectEnvironment(ctx context.Context, environment string) error {
	value, ok := environmentValue(environment)
	if !ok {
		p.logger.Warn("Invalid environment in input file.", zap.String("environment", environment))
		answer, err := p.prompt.Line(fmt.Sprintf(
			"Invalid value for environment: %s\nValid options are: Production, Pre-production\nEnvironment", environment))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAutomation, err)
		}
		value, ok = environmentValue(answer)
		if !ok {
			return fmt.Errorf("%w: invalid environment %q", review.ErrInvalidInput, answer)
		}
	}

	selector := fmt.Sprintf(`//input[@type="radio" and @value="%s"]`, value)
	if err := p.s.Click(ctx, selector, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: environment radio: %v", ErrAutomation, err)
	}
	return nil
}

// selectRegions enables the region list and picks each configured region in
// the multi-select.
func (p *Portal) selectRegions(ctx context.Context, regions []string) error {
	if err := p.s.Click(ctx, selRegionsCheckbox, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: regions checkbox: %v", ErrAutomation, err)
	}
	for _, region := range regions {
		region = strings.ToLower(region)
		if err := p.s.Click(ctx, selRegionsMultiselect, p.cfg.ElementWait); err != nil {
			return fmt.Errorf("%w: regions multiselect: %v", ErrAutomation, err)
		}
		if err := p.s.Click(ctx, optionSelector(region), p.cfg.ElementWait); err != nil {
			return fmt.Errorf("%w: region '%s': %v", ErrAutomation, region, err)
		}
	}
	return nil
}

// enterAccountIDs validates and enters the optional account identifiers.
// A malformed identifier downgrades to skipping the field entirely, but only
// with operator consent.
func (p *Portal) enterAccountIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if bad, found := review.FirstInvalidAccountID(ids); found {
		p.logger.Warn("Invalid account ID in input file.", zap.String("account_id", bad))
		cont, err := p.prompt.Confirm(fmt.Sprintf(
			"Invalid Account ID in the input file: %s\nDo you want to continue without entering Account IDs?", bad))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAutomation, err)
		}
		if !cont {
			return fmt.Errorf("%w: invalid account ID %q", review.ErrInvalidInput, bad)
		}
		return nil
	}
	if err := p.s.Type(ctx, selAccountIDsTextarea, strings.Join(ids, ","), p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: account IDs: %v", ErrAutomation, err)
	}
	return nil
}
