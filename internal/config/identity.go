package config

import "os"

// Identity holds the deployment identity an invocation runs against.
// Empty fields mean the value was never provided; they are rendered as
// "unknown" only at the report boundary, never treated as an error.
type Identity struct {
	Project     string
	Environment string
	Workspace   string
	Bucket      string
	VPCID       string
	LogGroup    string
	Function    string
}

// IdentityFromEnv reads the deployment identity from the environment
// variables the scheduler injects.
func IdentityFromEnv() Identity {
	return Identity{
		Project:     os.Getenv("PROJECT_NAME"),
		Environment: os.Getenv("ENVIRONMENT"),
		Workspace:   os.Getenv("WORKSPACE"),
		Bucket:      os.Getenv("BUCKET_NAME"),
		VPCID:       os.Getenv("VPC_ID"),
		LogGroup:    os.Getenv("LOG_GROUP"),
		Function:    os.Getenv("FUNCTION_NAME"),
	}
}
