// Package services implements the portal's use cases on top of the
// repositories. Handlers translate its errors into responses.
package services
