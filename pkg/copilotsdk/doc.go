/*
Package copilotsdk is the caller side of the copilot bookkeeping service.

# Overview

The package has two halves:

  - Session: the login state machine (LoggedOut, Active, Expired) with an idle
    timeout, guards for protected and public-only contexts, and a Monitor that
    expires idle sessions in the background.
  - SDKClient: typed calls to the server that go through the Session.

A session starts logged out. A successful Login stores the token and starts
the idle clock:

	session := copilotsdk.NewSession(copilotsdk.SessionOptions{
		Storage:   copilotsdk.NewFileStorage(filepath.Join(configDir, "copilot", "session.json")),
		Navigator: copilotsdk.NavigatorFunc(func(to string) { fmt.Println("->", to) }),
	})
	client := copilotsdk.NewSDKClient("http://localhost:3000", session)

	user, err := client.Login(ctx, "a@example.com", "secret")

# Guards

Every authenticated call runs Session.RequireAuth first. When the session is
not Active the call fails with ErrNotAuthenticated before anything is sent,
the session is cleared and the Navigator is sent to SignInPath. A 2xx answer
refreshes the activity timestamp; a 401 answer logs out immediately and the
call fails with ErrUnauthorized.

Public-only contexts such as a sign-in form call RedirectIfLoggedIn, which
sends an Active caller to LandingPath.

# Idle expiry

A session is Expired once more than IdleTimeout (one hour by default) has
passed since the last activity. Expiry is detected lazily by the guards, or
periodically by a Monitor:

	m := session.StartMonitor(copilotsdk.DefaultCheckInterval)
	defer m.Stop()

The Monitor shows SessionExpiredNotice through the Notifier before logging out.
*/
package copilotsdk
