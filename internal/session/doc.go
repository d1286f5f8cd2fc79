// Package session manages the account registry and the current session
// credential.
//
// A credential is a self-describing string minted at login or registration,
// persisted under the "session" key and decoded again at startup. With the
// default PlainCodec it is plain base64 of the JSON claims
// {sub, email, name, role, iat} (iat in Unix milliseconds): anyone holding it
// can read it, and a well-formed forgery decodes fine. SignedCodec carries
// the same claims as an HS256 JWT and rejects tampered tokens.
//
// Passwords are accepted by Register and Login, wiped, and never stored or
// checked.
//
// Lifecycle
//
//	m := session.NewManager(backend, session.WithLogger(log))
//	_ = m.Bootstrap(ctx)              // seed admin, restore session
//	_, _ = m.Login(ctx, email, pw)
//	s, ok := m.Current()
//	_ = m.Logout(ctx)
package session
