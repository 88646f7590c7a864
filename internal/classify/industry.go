package classify

// industryKR maps Yahoo Finance industry names to short Korean labels
var industryKR = map[string]string{
	// Technology
	"Semiconductors": "반도체",
	"Semiconductor Equipment & Materials": "반도체장비",
	"Software - Application": "응용SW",
	"Software - Infrastructure": "인프라SW",
	"Information Technology Services": "IT서비스",
	"Computer Hardware": "HW",
	"Electronic Components": "전자부품",
	"Scientific & Technical Instruments": "계측기기",
	"Communication Equipment": "통신장비",
	"Consumer Electronics": "가전",
	"Electronics & Computer Distribution": "전자유통",
	"Electronic Gaming & Multimedia": "게임",
	"Solar": "태양광",

	// Internet & Media
	"Internet Content & Information": "인터넷",
	"Internet Retail": "온라인유통",
	"Entertainment": "엔터",
	"Broadcasting": "방송",
	"Publishing": "출판",
	"Advertising Agencies": "광고",
	"Telecom Services": "통신",

	// Financial
	"Banks - Regional": "지역은행",
	"Banks - Diversified": "대형은행",
	"Asset Management": "자산운용",
	"Capital Markets": "자본시장",
	"Credit Services": "신용서비스",
	"Financial Data & Stock Exchanges": "금융데이터",
	"Insurance - Property & Casualty": "손해보험",
	"Insurance - Life": "생명보험",
	"Insurance - Diversified": "종합보험",
	"Insurance - Specialty": "특수보험",
	"Insurance - Reinsurance": "재보험",
	"Insurance Brokers": "보험중개",
	"Financial Conglomerates": "금융지주",

	// Healthcare
	"Medical Devices": "의료기기",
	"Medical Instruments & Supplies": "의료용품",
	"Medical Care Facilities": "의료시설",
	"Medical Distribution": "의약유통",
	"Diagnostics & Research": "진단연구",
	"Drug Manufacturers - General": "대형제약",
	"Drug Manufacturers - Specialty & Generic": "특수제약",
	"Biotechnology": "바이오",
	"Healthcare Plans": "건강보험",
	"Health Information Services": "의료정보",

	// Industrials
	"Aerospace & Defense": "방산",
	"Specialty Industrial Machinery": "산업기계",
	"Farm & Heavy Construction Machinery": "중장비",
	"Engineering & Construction": "건설",
	"Building Products & Equipment": "건축자재",
	"Building Materials": "건자재",
	"Electrical Equipment & Parts": "전기장비",
	"Tools & Accessories": "공구",
	"Industrial Distribution": "산업유통",
	"Specialty Business Services": "비즈니스서비스",
	"Consulting Services": "컨설팅",
	"Security & Protection Services": "보안",
	"Waste Management": "폐기물",
	"Pollution & Treatment Controls": "환경",
	"Conglomerates": "복합기업",
	"Integrated Freight & Logistics": "물류",
	"Railroads": "철도",
	"Trucking": "트럭운송",
	"Airlines": "항공",
	"Marine Shipping": "해운",
	"Rental & Leasing Services": "렌탈리스",

	// Consumer Cyclical
	"Auto Parts": "자동차부품",
	"Auto Manufacturers": "자동차",
	"Auto & Truck Dealerships": "자동차딜러",
	"Restaurants": "외식",
	"Specialty Retail": "전문소매",
	"Discount Stores": "할인점",
	"Home Improvement Retail": "홈인테리어",
	"Apparel Retail": "의류소매",
	"Apparel Manufacturing": "의류제조",
	"Department Stores": "백화점",
	"Footwear & Accessories": "신발잡화",
	"Luxury Goods": "명품",
	"Residential Construction": "주택건설",
	"Furnishings, Fixtures & Appliances": "가구가전",
	"Resorts & Casinos": "리조트카지노",
	"Gambling": "도박",
	"Lodging": "숙박",
	"Travel Services": "여행",
	"Recreational Vehicles": "레저차량",
	"Leisure": "레저",
	"Personal Services": "생활서비스",

	// Consumer Defensive
	"Packaged Foods": "식품",
	"Beverages - Non-Alcoholic": "음료",
	"Beverages - Brewers": "맥주",
	"Beverages - Wineries & Distilleries": "주류",
	"Confectioners": "제과",
	"Household & Personal Products": "생활용품",
	"Tobacco": "담배",
	"Grocery Stores": "식료품점",
	"Food Distribution": "식품유통",
	"Education & Training Services": "교육",

	// Real Estate
	"REIT - Specialty": "리츠특수",
	"REIT - Residential": "리츠주거",
	"REIT - Retail": "리츠소매",
	"REIT - Industrial": "리츠산업",
	"REIT - Healthcare Facilities": "리츠의료",
	"REIT - Office": "리츠오피스",
	"REIT - Hotel & Motel": "리츠호텔",
	"REIT - Mortgage": "리츠모기지",
	"REIT - Diversified": "리츠복합",
	"Real Estate Services": "부동산서비스",

	// Energy
	"Oil & Gas E&P": "석유가스",
	"Oil & Gas Midstream": "석유미드스트림",
	"Oil & Gas Equipment & Services": "석유장비",
	"Oil & Gas Refining & Marketing": "석유정제",
	"Oil & Gas Integrated": "석유종합",

	// Utilities
	"Utilities - Regulated Electric": "전력",
	"Utilities - Regulated Gas": "가스",
	"Utilities - Regulated Water": "수도",
	"Utilities - Diversified": "유틸복합",
	"Utilities - Independent Power Producers": "독립발전",
	"Utilities - Renewable": "신재생",

	// Basic Materials
	"Specialty Chemicals": "특수화학",
	"Chemicals": "화학",
	"Agricultural Inputs": "농업",
	"Steel": "철강",
	"Aluminum": "알루미늄",
	"Copper": "구리",
	"Gold": "금",
	"Other Precious Metals & Mining": "귀금속",
	"Other Industrial Metals & Mining": "산업금속",
	"Lumber & Wood Production": "목재",
	"Metal Fabrication": "금속가공",
	"Packaging & Containers": "포장재",
	"Farm Products": "농산물",

	// Other
	"N/A": "기타",
}

// IndustryKR returns the Korean label for an industry, or the input when unmapped
func IndustryKR(industry string) string {
	if industry == "" {
		return ""
	}
	if kr, ok := industryKR[industry]; ok {
		return kr
	}
	return industry
}
