// Package messages collects the conventions for errors and status messages
// across the console's layers.
//
// # Data layer (internal/k8s)
//
// Return plain Go errors. Wrap with fmt.Errorf and %w so callers can match
// sentinels such as k8s.ErrNotFound with errors.Is:
//
//	obj, err := client.Get(ctx, name, metav1.GetOptions{})
//	if apierrors.IsNotFound(err) {
//	    return Resource{}, fmt.Errorf("%s %s/%s: %w", kind, ns, name, ErrNotFound)
//	}
//
// WrapError(err, "context") is the shorthand for fmt.Errorf("context: %w", err).
//
// # Action layer (internal/actions)
//
// Menu action handlers return a tea.Cmd that yields a types.StatusMsg. Use
// ErrorCmd, SuccessCmd and InfoCmd instead of building the message by hand:
//
//	if err := mutator.Delete(ctx, kind, ns, name); err != nil {
//	    return messages.ErrorCmd("Delete failed: %v", err)()
//	}
//	return messages.SuccessCmd("Deleted %s/%s", ns, name)()
//
// # Page layer (internal/pages)
//
// Subscription and fetch failures never leave a page as status messages.
// They become the page's Error or NotFound state and are rendered inline with
// a retry hint. Status messages are reserved for the outcome of user actions.
package messages
