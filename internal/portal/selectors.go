// File: internal/portal/selectors.go
package portal

import (
	"fmt"
	"strings"
)

// Selectors for the portal's sign-in and console chrome.
const (
	selUsername     = "#username"
	selPassword     = "#password"
	selSignInButton = "#signin_button"
	selLoginError   = ".mainError"
	selMFACode      = "#mfacode"
	selMFASubmit    = "#submitMfa_button"
	selRegionMenu   = "#nav-regionMenu"
	selSearchBox    = "#search-box-input"
	selUserMenu     = "#nav-usernameMenu"
	selSignOut      = "#aws-console-logout"

	// signInTitle is the page title shown while the sign-in form is still
	// active; it changing is the success signal.
	signInTitle = "Amazon Web Services Sign-In"

	// serviceName is typed into the console search box to reach the tool.
	serviceName = "AWS Well-Architected Tool"
)

// Selectors for the workload creation form.
const (
	selDefineWorkloadLink   = `//a[text()='Define workload']`
	selWorkloadName         = `//input[@name="name"]`
	selWorkloadDescription  = `//textarea[@name="description"]`
	selIndustryTypeCombo    = `//*[@name="industryGroup"]`
	selIndustryCombo        = "#subIndustrySelect"
	selRegionsCheckbox      = `//*[@id="workloadRegionsCheckbox"]//input[@type="checkbox"]`
	selRegionsMultiselect   = "#awsui-multiselect-0"
	selAccountIDsTextarea   = "#awsui-textarea-2"
	selCreateWorkloadButton = "#defineWorkload-createWorkloadButton"
)

// Selectors for the question wizard.
const (
	selStartReviewLink   = `//a[text()='Start review']`
	selQuestionCaption   = ".awsui-util-action-stripe-title"
	selDoesNotApplyState = `*[id^="awsui-toggle"]`
	selAnswerNotes       = `textarea[id^="awsui-textarea"][name="answerNotes"]`
	selAnswerCheckboxes  = `input[id^="awsui-checkbox"]`
	selNextQuestion      = "#questionWizard-nextQuestionButton"
	selSaveAndExit       = "#questionWizard-saveAndExitButton-finalQuestion"
	// selLastQuestionMarker matches the save-and-exit control only once the
	// wizard has rendered the terminal question.
	selLastQuestionMarker = `//*[@id="questionWizard-saveAndExitButton-finalQuestion" and @class=""]`
)

// Selectors for milestone recording and artifact capture.
const (
	selRecordMilestone       = "#viewWorkload-recordMilestone"
	selMilestoneModal        = ".awsui-modal-container"
	selMilestoneName         = `//input[@name="milestoneName"]`
	selMilestoneRecordButton = "#viewWorkloadRecordMilestoneRecordButton"
	selGeneratePDFButton     = "#viewWorkload_generatePDFButton"
	selGeneratePDFSubmit     = `//*[@id="viewWorkload_generatePDFButton"]//button[@type="submit"]`
	selMilestonesLink        = `//a[text()='Milestones']`
	selPropertiesLink        = `//a[text()='Properties']`
	selMilestoneARN          = "#viewWorkload_workloadArn_milestone"
)

// optionSelector matches a dropdown item whose DOM id embeds the given token.
func optionSelector(token string) string {
	return fmt.Sprintf(`//li[contains(@id, "%s")]`, token)
}

// linkSelector matches an anchor by its exact visible text.
func linkSelector(text string) string {
	return fmt.Sprintf(`//a[text()=%s]`, xpathString(text))
}

// partialLinkSelector matches an anchor containing the given text.
func partialLinkSelector(text string) string {
	return fmt.Sprintf(`//a[contains(text(), %s)]`, xpathString(text))
}

// xpathString quotes a literal for embedding in an XPath expression. Values
// containing both quote characters need the concat() form.
func xpathString(s string) string {
	if !strings.Contains(s, `'`) {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, `'`)
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if part != "" {
			quoted = append(quoted, "'"+part+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

// categoryTokens maps the human-readable industry names offered by the
// portal to the token embedded in the corresponding dropdown item's DOM id.
// The portal derives these ids from the display names, so any name not in
// the table falls back to the same derivation (strip "& ", spaces to
// underscores). The table pins the known names explicitly because this
// derivation is the most likely thing to silently break when the remote UI
// changes.
var categoryTokens = map[string]string{
	"Agriculture":                        "Agriculture",
	"Automobile":                         "Automobile",
	"Defense":                            "Defense",
	"Design & Engineering":               "Design_Engineering",
	"Digital Advertising":                "Digital_Advertising",
	"Education":                          "Education",
	"Financial Services":                 "Financial_Services",
	"Gaming":                             "Gaming",
	"General Public Services":            "General_Public_Services",
	"Healthcare":                         "Healthcare",
	"Hospitality":                        "Hospitality",
	"InfoTech":                           "InfoTech",
	"Justice & Public Safety":            "Justice_Public_Safety",
	"Life Sciences":                      "Life_Sciences",
	"Manufacturing":                      "Manufacturing",
	"Media & Entertainment":              "Media_Entertainment",
	"Mining & Resources":                 "Mining_Resources",
	"Oil & Gas":                          "Oil_Gas",
	"Power & Utilities":                  "Power_Utilities",
	"Professional Services":              "Professional_Services",
	"Real Estate & Construction":         "Real_Estate_Construction",
	"Retail & Wholesale":                 "Retail_Wholesale",
	"Social Protection":                  "Social_Protection",
	"Telecommunications":                 "Telecommunications",
	"Travel, Transportation & Logistics": "Travel_Transportation_Logistics",
	"Other":                              "Other",
}

// categoryToken translates a category display name into the token matched
// against dropdown item ids.
func categoryToken(name string) string {
	name = strings.TrimSpace(name)
	if token, ok := categoryTokens[name]; ok {
		return token
	}
	token := strings.ReplaceAll(name, "& ", "")
	token = strings.ReplaceAll(token, ", ", " ")
	return strings.ReplaceAll(token, " ", "_")
}
