package models

type OrgRole string

const (
	RoleOwner  OrgRole = "owner"
	RoleAdmin  OrgRole = "admin"
	RoleMember OrgRole = "member"
)

type ServiceType string

const (
	ServiceTypeWeb   ServiceType = "WEB"
	ServiceTypeAPI   ServiceType = "API"
	ServiceTypeBatch ServiceType = "BATCH"
	ServiceTypeOther ServiceType = "OTHER"
)

type EnvironmentType string

const (
	EnvironmentProd  EnvironmentType = "PROD"
	EnvironmentStage EnvironmentType = "STAGE"
	EnvironmentDev   EnvironmentType = "DEV"
)

type PolicyType string

const (
	PolicyTypeSLA             PolicyType = "SLA"
	PolicyTypeSeverityMapping PolicyType = "SEVERITY_MAPPING"
	PolicyTypePRGate          PolicyType = "PR_GATE"
)

type IntegrationProvider string

const (
	ProviderGitHub IntegrationProvider = "GITHUB"
	ProviderGitLab IntegrationProvider = "GITLAB"
	ProviderJira   IntegrationProvider = "JIRA"
	ProviderSlack  IntegrationProvider = "SLACK"
)
