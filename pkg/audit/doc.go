// Package audit provides security audit logging in RFC5424 syslog format.
//
// Every authentication attempt, authorization decision, resource creation,
// and password change emits an Event. Events go to stdout and, when
// audit_to_database is enabled, to the messages table.
//
//	audit.Log(audit.AccessEvent{
//	    UserID:   "alice",
//	    Resource: "device/7",
//	    Policy:   "self-or-admin",
//	    Allowed:  true,
//	})
//
// Disable with FORGE_AUDIT_ENABLED=false.
package audit
