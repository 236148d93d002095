package common

// ResolvePostOnly normalizes every way a caller can ask for post-only
// behavior into a single explicit flag, before any request is built.
//
// Post-only is requested via params ("postOnly"/"post_only"), a synthetic
// "postOnly" order type, the synthetic "PO" time in force, or a venue-native
// flag. A requested post-only order must rest on the book, so IOC/FOK and
// market orders are rejected with an invalid-order error. On success the
// type collapses to limit, a synthetic "PO" time in force is cleared, and
// the request keys are stripped from params.
func ResolvePostOnly(exchange string, typ OrderType, tif TimeInForce, exchangeFlag bool, params Params) (OrderType, bool, TimeInForce, Params, error) {
	requested := exchangeFlag || typ == OrderTypePostOnly || tif == TimeInForcePO
	if flag, ok := params.Bool("postOnly"); ok && flag {
		requested = true
	}
	if flag, ok := params.Bool("post_only"); ok && flag {
		requested = true
	}
	params = params.Omit("postOnly", "post_only")

	if !requested {
		return typ, false, tif, params, nil
	}

	if tif == TimeInForceIOC || tif == TimeInForceFOK {
		return typ, false, tif, params,
			NewInvalidOrder(exchange, "createOrder", "postOnly orders cannot have timeInForce equal to "+tif.String())
	}
	if typ == OrderTypeMarket {
		return typ, false, tif, params,
			NewInvalidOrder(exchange, "createOrder", "market orders cannot be postOnly")
	}

	if tif == TimeInForcePO {
		tif = ""
	}
	return OrderTypeLimit, true, tif, params, nil
}
