package domain

// Offer label joiner: "<title> a <city>".
const LabelJoiner = " a "

// CheckoutCityRequiredMessage is shown while no shipping city is selected.
const CheckoutCityRequiredMessage = "Seleccione una ciudad de envío antes de realizar el pago."

// TaxModes lists the values accepted for ShippingOffer.TaxMode.
var TaxModes = []TaxMode{
	TaxPerItem,
	TaxPerOrder,
}
