package core

type MockAmountConverter struct {
	UsdToTokenUnitsFunc func(usdAmount, tokenAddress string, chainId int64, decimals int) (string, error)
	DecimalsOfFunc      func(tokenAddress string, chainId int64) int
}

func (m *MockAmountConverter) UsdToTokenUnits(usdAmount, tokenAddress string, chainId int64,
	decimals int) (string, error) {

	if m.UsdToTokenUnitsFunc != nil {
		return m.UsdToTokenUnitsFunc(usdAmount, tokenAddress, chainId, decimals)
	}

	return "", nil
}

func (m *MockAmountConverter) DecimalsOf(tokenAddress string, chainId int64) int {
	if m.DecimalsOfFunc != nil {
		return m.DecimalsOfFunc(tokenAddress, chainId)
	}

	return 18
}
