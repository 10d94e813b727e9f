package filler

// FieldKey - каноничный ключ поля анкеты поставщика. Закрытый набор:
// шаблоны ссылаются на поля десятками синонимов, но в записи данных
// каждое семантическое поле представлено ровно одним ключом.
type FieldKey string

const (
	KeyCompanyName         FieldKey = "companyName"
	KeyProjectName         FieldKey = "projectName"
	KeyProjectNumber       FieldKey = "projectNumber"
	KeyPurchaserName       FieldKey = "purchaserName"
	KeyAddress             FieldKey = "address"
	KeyPhone               FieldKey = "phone"
	KeyEmail               FieldKey = "email"
	KeyFax                 FieldKey = "fax"
	KeyPostalCode          FieldKey = "postalCode"
	KeyLegalRepresentative FieldKey = "legalRepresentative"
	KeyRepresentativeName  FieldKey = "representativeName"
	KeyRepresentativeTitle FieldKey = "representativeTitle"
	KeyEstablishDate       FieldKey = "establishDate"
	KeySocialCreditCode    FieldKey = "socialCreditCode"
	KeyRegisteredCapital   FieldKey = "registeredCapital"
	KeyBusinessScope       FieldKey = "businessScope"
	KeyCompanyType         FieldKey = "companyType"
	KeyDate                FieldKey = "date"
)

// Свободные ключи-источники, которые встречаются в данных от внешних систем.
// Таблица распознавания о них не знает: они сводятся к каноничным ключам
// на границе, до обхода документа.
const (
	keyFixedPhone        FieldKey = "fixedPhone"
	keyMobilePhone       FieldKey = "mobilePhone"
	keyOfficeAddress     FieldKey = "officeAddress"
	keyRegisteredAddress FieldKey = "registeredAddress"
)

// DataRecord - запись данных поставщика/проекта: каноничный ключ -> значение.
type DataRecord map[FieldKey]string

// Normalized возвращает копию записи с разрешёнными псевдонимами:
// phone <- fixedPhone <- mobilePhone, address <- officeAddress <- registeredAddress.
// Уже заданные каноничные ключи имеют приоритет над псевдонимами.
func (d DataRecord) Normalized() DataRecord {
	out := make(DataRecord, len(d))
	for k, v := range d {
		out[k] = v
	}

	if out[KeyPhone] == "" {
		if v := out[keyFixedPhone]; v != "" {
			out[KeyPhone] = v
		} else if v := out[keyMobilePhone]; v != "" {
			out[KeyPhone] = v
		}
	}

	if out[KeyAddress] == "" {
		if v := out[keyOfficeAddress]; v != "" {
			out[KeyAddress] = v
		} else if v := out[keyRegisteredAddress]; v != "" {
			out[KeyAddress] = v
		}
	}

	return out
}
