// Package proxy moves HTTP traffic between the platform and other
// systems: an outbound Client for fetching remote resources and an
// inbound Handler for serving legacy platform paths through the
// daemon.
//
// # Fetching
//
//	client := proxy.New(proxy.WithTimeout(10 * time.Second))
//
//	resp, err := client.Fetch(ctx, "https://example.com/feed.json")
//	if err != nil {
//		return err
//	}
//	if !resp.IsSuccess() {
//		return fmt.Errorf("upstream answered %s", resp.Status)
//	}
//
// A 404 or 500 from the origin is a response, not an error; err covers
// transport failures and policy violations only. Redirects are not
// followed unless WithFollowRedirects asks for them, and a followed
// chain may never downgrade from https to http.
//
// # Legacy paths
//
//	target, _ := url.Parse("http://legacy.internal:8080")
//	r.Mount("/forum", http.StripPrefix("/forum",
//		proxy.Handler(target, proxy.WithTrustedHosts(site.IsTrustedDomain))))
package proxy
