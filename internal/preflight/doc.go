// Package preflight provides readiness checks for the filesystem paths,
// storage backend and external tools clipscout depends on.
//
// These checks run in two contexts:
//   - "clipscout serve" calls RunAll before binding the API so a missing
//     asset directory or unreachable database is reported at startup.
//   - The CLI "clipscout status" command and GET /api/status use
//     CheckSystemDeps to display tool availability.
package preflight
