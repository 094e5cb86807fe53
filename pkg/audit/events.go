package audit

import "fmt"

// AuthenticateEvent records an authentication attempt (basic or token).
type AuthenticateEvent struct {
	UserID    string
	Method    string // "basic" or "token"
	RemoteIP  string
	Success   bool
	ErrorInfo string
}

func (e AuthenticateEvent) MessageID() string { return "authn" }

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated via %s", e.UserID, e.Method)
	}
	return fmt.Sprintf("%s failed to authenticate via %s", e.UserID, e.Method)
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int { return FacilityAuthPriv }

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user":   e.UserID,
			"method": e.Method,
		},
		SDIDAction: {
			"operation": "authenticate",
			"result":    resultString(e.Success),
		},
	}
	if e.RemoteIP != "" {
		sd[SDIDClient] = map[string]string{"ip": e.RemoteIP}
	}
	if e.ErrorInfo != "" {
		sd[SDIDAction]["error"] = e.ErrorInfo
	}
	return sd
}

// AccessEvent records an authorization decision on a resource.
type AccessEvent struct {
	UserID   string
	Role     string
	Resource string
	Policy   string // "self-or-admin" or "admin-only"
	Allowed  bool
}

func (e AccessEvent) MessageID() string { return "access" }

func (e AccessEvent) Message() string {
	if e.Allowed {
		return fmt.Sprintf("%s was granted access to %s", e.UserID, e.Resource)
	}
	return fmt.Sprintf("%s was denied access to %s", e.UserID, e.Resource)
}

func (e AccessEvent) Severity() Severity {
	if e.Allowed {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AccessEvent) Facility() int { return FacilityAuth }

func (e AccessEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"resource": e.Resource,
		},
		SDIDAuth: {
			"user": e.UserID,
			"role": e.Role,
		},
		SDIDAction: {
			"operation": "access",
			"policy":    e.Policy,
			"result":    resultString(e.Allowed),
		},
	}
}

// CreateEvent records creation of a resource (user or device).
type CreateEvent struct {
	UserID   string // actor; empty for public sign-up
	Resource string // e.g. "user/alice", "device/7"
}

func (e CreateEvent) MessageID() string { return "create" }

func (e CreateEvent) Message() string {
	actor := e.UserID
	if actor == "" {
		actor = "anonymous"
	}
	return fmt.Sprintf("%s created %s", actor, e.Resource)
}

func (e CreateEvent) Severity() Severity { return SeverityInfo }

func (e CreateEvent) Facility() int { return FacilityAuth }

func (e CreateEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"resource": e.Resource,
		},
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDAction: {
			"operation": "create",
			"result":    "success",
		},
	}
}

// PasswordChangeEvent records a credential rotation.
type PasswordChangeEvent struct {
	UserID  string // actor
	Subject string // whose password changed
}

func (e PasswordChangeEvent) MessageID() string { return "password" }

func (e PasswordChangeEvent) Message() string {
	if e.UserID == e.Subject {
		return fmt.Sprintf("%s changed their password", e.UserID)
	}
	return fmt.Sprintf("%s changed the password of %s", e.UserID, e.Subject)
}

func (e PasswordChangeEvent) Severity() Severity { return SeverityNotice }

func (e PasswordChangeEvent) Facility() int { return FacilityAuthPriv }

func (e PasswordChangeEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"user": e.Subject,
		},
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDAction: {
			"operation": "password-change",
			"result":    "success",
		},
	}
}

func resultString(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
