package profile

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

var wizardDatabases = []struct {
	Kind  string
	Label string
}{
	{DBCustomers, "Customer records"},
	{DBEmployees, "Employee records"},
	{DBSuppliers, "Supplier records"},
	{DBMarketing, "Marketing contacts"},
	{DBMembers, "Club / community members"},
	{DBMedical, "Medical or health records"},
	{DBCameras, "Security camera footage"},
	{DBCVs, "Job applicant CVs"},
	{DBWebsiteLeads, "Website lead forms"},
}

var wizardSizes = []string{"under100", "100-1k", "1k-10k", "10k-100k", "100k+"}
var wizardAccess = []string{"1-2", "3-10", "11-50", "50-100", "100+"}

// RunWizard runs the interactive onboarding questionnaire and returns the
// resulting profile. It mirrors the web intake form for CLI-first users.
func RunWizard() (*Profile, error) {
	fmt.Println("Welcome to MyDPO! Let's map your data processing.")
	fmt.Println()

	p := &Profile{DBDetails: map[string]DatabaseDetail{}}

	// 1. Databases, one at a time until done.
	remaining := make([]string, 0, len(wizardDatabases)+1)
	labels := map[string]string{}
	for _, d := range wizardDatabases {
		remaining = append(remaining, d.Label)
		labels[d.Label] = d.Kind
	}
	for {
		items := append([]string{"(done)"}, remaining...)
		sel := promptui.Select{
			Label: "Which personal-data databases do you hold? (pick one at a time)",
			Items: items,
		}
		idx, choice, err := sel.Run()
		if err != nil {
			return nil, fmt.Errorf("database selection: %w", err)
		}
		if idx == 0 {
			break
		}
		kind := labels[choice]
		p.Databases = append(p.Databases, kind)
		remaining = append(remaining[:idx-1], remaining[idx:]...)

		detail, err := askDatabaseDetail(choice)
		if err != nil {
			return nil, err
		}
		p.DBDetails[kind] = *detail
	}

	// 2. Custom databases.
	customPrompt := promptui.Prompt{
		Label:   "Other databases (comma-separated, leave blank for none)",
		Default: "",
	}
	customStr, err := customPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("custom databases: %w", err)
	}
	p.CustomDatabases = splitAndTrim(customStr)

	// 3. Processors.
	processorPrompt := promptui.Prompt{
		Label:   "External processors (comma-separated keys, e.g. crm,payroll,cloud_storage)",
		Default: "",
	}
	processorStr, err := processorPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("processors: %w", err)
	}
	for _, key := range splitAndTrim(processorStr) {
		if _, ok := processorLabels[key]; ok {
			p.Processors = append(p.Processors, key)
		} else {
			p.CustomProcessors = append(p.CustomProcessors, key)
		}
	}

	// 4. Consent mechanism.
	consentSel := promptui.Select{
		Label: "Do your collection forms obtain explicit consent?",
		Items: []string{"yes", "no", "partial"},
	}
	if _, p.ConsentStatus, err = consentSel.Run(); err != nil {
		return nil, fmt.Errorf("consent status: %w", err)
	}

	// 5. Access control posture.
	accessSel := promptui.Select{
		Label: "Who can access personal data in your systems?",
		Items: []string{"all", "by_role", "need_to_know"},
	}
	if _, p.AccessControl, err = accessSel.Run(); err != nil {
		return nil, fmt.Errorf("access control: %w", err)
	}

	// 6. Industry.
	industrySel := promptui.Select{
		Label: "Industry",
		Items: []string{"health", "finance", "retail", "technology", "education", "other"},
	}
	if _, p.Industry, err = industrySel.Run(); err != nil {
		return nil, fmt.Errorf("industry: %w", err)
	}

	// 7. Security owner.
	ownerSel := promptui.Select{
		Label: "Who is responsible for information security?",
		Items: []string{"none", "it", "external", "ceo"},
	}
	if _, p.SecurityOwner, err = ownerSel.Run(); err != nil {
		return nil, fmt.Errorf("security owner: %w", err)
	}

	// 8. Camera officer, only when cameras were declared.
	if p.HasDatabase(DBCameras) {
		cameraPrompt := promptui.Prompt{
			Label:   "Name of the person responsible for camera footage (blank if none)",
			Default: "",
		}
		if p.CameraOwner, err = cameraPrompt.Run(); err != nil {
			return nil, fmt.Errorf("camera owner: %w", err)
		}
	}

	return p, nil
}

func askDatabaseDetail(label string) (*DatabaseDetail, error) {
	sizeSel := promptui.Select{
		Label: fmt.Sprintf("%s: how many records?", label),
		Items: wizardSizes,
	}
	_, size, err := sizeSel.Run()
	if err != nil {
		return nil, fmt.Errorf("size bracket: %w", err)
	}

	accessSel := promptui.Select{
		Label: fmt.Sprintf("%s: how many people have access?", label),
		Items: wizardAccess,
	}
	_, access, err := accessSel.Run()
	if err != nil {
		return nil, fmt.Errorf("access bracket: %w", err)
	}

	retentionSel := promptui.Select{
		Label: fmt.Sprintf("%s: how long is data kept?", label),
		Items: []string{"never", "yearly", "quarterly", "policy"},
	}
	_, retention, err := retentionSel.Run()
	if err != nil {
		return nil, fmt.Errorf("retention: %w", err)
	}

	return &DatabaseDetail{Size: size, Access: access, Retention: retention}, nil
}

func splitAndTrim(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
