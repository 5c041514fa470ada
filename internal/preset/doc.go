// Package preset manages tiered execution presets for the Box64 family and
// FEXCore translation backends.
//
// Every store exposes the same four built-in tiers (stability, compatibility,
// intermediate, performance) whose environment variables come from fixed
// per-domain tables, followed by user-defined custom presets. Custom presets
// persist in a single settings key per domain, "<prefix>_custom_presets", as
// comma-separated records of the form id|name|envVars. The format has no
// escaping, so CreateOrEdit refuses names and variables that would break it.
//
// Stores hold no locks. Callers that mutate the same domain from several
// processes serialize access themselves.
package preset
